package facilitator_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"github.com/dwarvesf/swappy/internal/facilitator"
)

var _ = Describe("Kind", func() {
	DescribeTable("names wrapped facilitator errors",
		func(err error, want string) {
			Expect(facilitator.Kind(err)).To(Equal(want))
			Expect(facilitator.IsFacilitatorError(err)).To(Equal(want != ""))
		},
		Entry("bare", facilitator.ErrSlippageExceeded, "slippage_exceeded"),
		Entry("pkg/errors wrap", errors.Wrap(facilitator.ErrRouterFailure, "exactInputSingle"), "router_failure"),
		Entry("fmt wrap", fmt.Errorf("swap: %w", facilitator.ErrInvalidPayment), "invalid_payment"),
		Entry("transfer failure caused by reentrancy", errors.Wrapf(facilitator.ErrTransferFailure, "forward output: %v", facilitator.ErrReentrantCall), "transfer_failure"),
		Entry("foreign error", errors.New("connection refused"), ""),
	)

	It("treats nil as no failure", func() {
		Expect(facilitator.Kind(nil)).To(BeEmpty())
	})
})
