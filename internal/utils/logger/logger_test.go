package logger

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dwarvesf/swappy/internal/types/environments"
)

type fatalHook struct {
	called bool
}

func (h *fatalHook) OnWrite(_ *zapcore.CheckedEntry, _ []zapcore.Field) {
	h.called = true
}

// observed swaps the zap core for an in-memory recorder.
func observed(level zapcore.Level) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return &Logger{wrappedLogger: zap.New(core)}, logs
}

var _ = Describe("Logger", func() {
	Describe("#New", func() {
		DescribeTable("builds a logger for every environment",
			func(env environments.Environment, debug bool) {
				l := New(env)
				Expect(l).NotTo(BeNil())
				Expect(l.wrappedLogger.Core().Enabled(zapcore.InfoLevel)).To(BeTrue())
				Expect(l.wrappedLogger.Core().Enabled(zapcore.DebugLevel)).To(Equal(debug))
			},
			Entry("development", environments.Development, true),
			Entry("staging", environments.Staging, false),
			Entry("production", environments.Production, false),
			Entry("test", environments.Test, false),
			Entry("unknown falls back to production", environments.Environment("unknown"), false),
		)
	})

	Describe("structured fields", func() {
		It("attaches the step tag and every field to the entry", func() {
			l, logs := observed(zapcore.DebugLevel)

			l.Error("[SwapNativeToToken][ExactInputSingle]", map[string]string{
				"output_asset": "0x4200000000000000000000000000000000000006",
				"error":        "too little received",
			})

			Expect(logs.Len()).To(Equal(1))
			entry := logs.All()[0]
			Expect(entry.Level).To(Equal(zapcore.ErrorLevel))
			Expect(entry.Message).To(Equal("[SwapNativeToToken][ExactInputSingle]"))
			Expect(entry.ContextMap()).To(Equal(map[string]interface{}{
				"output_asset": "0x4200000000000000000000000000000000000006",
				"error":        "too little received",
			}))
		})

		It("logs without fields", func() {
			l, logs := observed(zapcore.DebugLevel)

			l.Warn("[Init] facilitator not initialized")
			l.Info("[Init] listening")

			Expect(logs.FilterMessage("[Init] facilitator not initialized").Len()).To(Equal(1))
			Expect(logs.All()[1].Context).To(BeEmpty())
		})

		It("drops entries below the configured level", func() {
			l, logs := observed(zapcore.InfoLevel)

			l.Debug("[Quote] pool lookup", map[string]string{"fee": "3000"})

			Expect(logs.Len()).To(BeZero())
		})
	})

	Describe("#Fatal", func() {
		It("hands the entry to the fatal hook", func() {
			hook := &fatalHook{}
			l := &Logger{wrappedLogger: zap.New(
				zapcore.NewCore(
					zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
					zapcore.AddSync(&bytes.Buffer{}),
					zap.FatalLevel,
				),
				zap.WithFatalHook(hook),
			)}

			l.Fatal("[pgstore.New][connectPostgres]", map[string]string{"error": "connection refused"})
			Expect(hook.called).To(BeTrue())
		})
	})

	Describe("#transformStrMapToFields", func() {
		It("maps every pair to a string field", func() {
			fields := transformStrMapToFields(map[string]string{"tx": "0xabc", "block": "12"})

			Expect(fields).To(ConsistOf(zap.String("tx", "0xabc"), zap.String("block", "12")))
		})

		It("returns an empty slice for nil input", func() {
			Expect(transformStrMapToFields(nil)).To(BeEmpty())
			Expect(fieldsOf(nil)).To(BeEmpty())
		})
	})
})
