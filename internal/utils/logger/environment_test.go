package logger

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ = Describe("Logger Environment", func() {
	type expectation struct {
		level        zapcore.Level
		encoding     string
		quiet        bool
		development  bool
		outputs      []string
		errorOutputs []string
	}

	DescribeTable("per-environment zap configs",
		func(build func() zap.Config, want expectation) {
			cfg := build()

			Expect(cfg.Level.Level()).To(Equal(want.level))
			Expect(cfg.Encoding).To(Equal(want.encoding))
			Expect(cfg.Development).To(Equal(want.development))
			Expect(cfg.DisableCaller).To(Equal(want.quiet))
			Expect(cfg.DisableStacktrace).To(Equal(want.quiet))
			Expect(cfg.OutputPaths).To(Equal(want.outputs))
			Expect(cfg.ErrorOutputPaths).To(Equal(want.errorOutputs))
		},
		Entry("production", newProductionLoggerConfig, expectation{
			level: zap.InfoLevel, encoding: "json",
			outputs: []string{"stdout"}, errorOutputs: []string{"stderr"},
		}),
		Entry("staging drops caller and stacktrace", newStagingLoggerConfig, expectation{
			level: zap.InfoLevel, encoding: "json", quiet: true,
			outputs: []string{"stdout"}, errorOutputs: []string{"stderr"},
		}),
		Entry("development", newDevelopmentLoggerConfig, expectation{
			level: zap.DebugLevel, encoding: "console", quiet: true, development: true,
			outputs: []string{"stdout"}, errorOutputs: []string{"stderr"},
		}),
		Entry("test discards output", newTestLoggerConfig, expectation{
			level: zap.InfoLevel, encoding: "json",
			outputs: []string{}, errorOutputs: []string{},
		}),
	)

	Describe("json encoders", func() {
		It("stamps entries with an ISO8601 timestamp key", func() {
			for _, cfg := range []zap.Config{newProductionLoggerConfig(), newStagingLoggerConfig()} {
				Expect(cfg.EncoderConfig.TimeKey).To(Equal("timestamp"))
				Expect(cfg.EncoderConfig.EncodeTime).NotTo(BeNil())
			}
		})
	})
})
