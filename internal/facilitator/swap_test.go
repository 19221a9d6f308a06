package facilitator_test

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dwarvesf/swappy/internal/dex"
	"github.com/dwarvesf/swappy/internal/facilitator"
	"github.com/dwarvesf/swappy/internal/simulation"
	"github.com/dwarvesf/swappy/internal/token"
)

var _ = Describe("SwapNativeToToken", func() {
	var (
		env *simulation.Environment
		one *uint256.Int
	)

	BeforeEach(func() {
		env = newEnv()
		one = simulation.Ether(1)
	})

	It("should fail with NotInitialized before initialization", func() {
		before := env.State.GetBalance(simulation.Alice)

		_, _, err := swap(env, simulation.Alice, one, facilitator.SwapParams{
			OutputAsset:   simulation.USDTAddress,
			MinimumOutput: uint256.NewInt(1),
			FeeTier:       dex.FeeLow,
			PaymentAmount: one,
		})
		Expect(err).To(MatchError(facilitator.ErrNotInitialized))
		Expect(env.State.GetBalance(simulation.Alice)).To(Equal(before))
	})

	Context("when initialized", func() {
		BeforeEach(func() {
			Expect(initialize(env, simulation.RouterAddress, simulation.WETHAddress)).To(Succeed())
		})

		It("should swap one ether for USDT at the quoted minimum", func() {
			q := quote(env, simulation.USDTAddress, dex.FeeLow, one)
			nativeBefore := env.State.GetBalance(simulation.Alice)

			receipt, result, err := swap(env, simulation.Alice, one, facilitator.SwapParams{
				OutputAsset:   simulation.USDTAddress,
				MinimumOutput: q,
				FeeTier:       dex.FeeLow,
				PaymentAmount: one,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(result.AmountOut.Cmp(q)).To(BeNumerically(">=", 0))
			Expect(tokenBalance(env, simulation.USDTAddress, simulation.Alice)).To(Equal(result.AmountOut))
			Expect(new(uint256.Int).Sub(nativeBefore, env.State.GetBalance(simulation.Alice))).To(Equal(one))

			logs := swapLogs(receipt)
			Expect(logs).To(HaveLen(1))
			Expect(logs[0].Token).To(Equal(simulation.USDTAddress))
			Expect(logs[0].AmountIn.String()).To(Equal(one.Dec()))
			Expect(logs[0].AmountOutMin.String()).To(Equal(q.Dec()))
			Expect(logs[0].AmountOut.String()).To(Equal(result.AmountOut.Dec()))
		})

		It("should leave nothing in the facilitator's custody", func() {
			_, _, err := swap(env, simulation.Alice, one, facilitator.SwapParams{
				OutputAsset:   simulation.DAIAddress,
				MinimumOutput: uint256.NewInt(1),
				FeeTier:       dex.FeeMedium,
				PaymentAmount: one,
			})
			Expect(err).NotTo(HaveOccurred())

			self := simulation.FacilitatorAddress
			Expect(env.State.GetBalance(self).IsZero()).To(BeTrue())
			Expect(env.WETH.BalanceOf(env.State, self).IsZero()).To(BeTrue())
			Expect(tokenBalance(env, simulation.DAIAddress, self).IsZero()).To(BeTrue())
			Expect(env.WETH.Allowance(env.State, self, simulation.RouterAddress).IsZero()).To(BeTrue())
		})

		It("should fail with SlippageExceeded when the minimum is one unit above the quote", func() {
			q := quote(env, simulation.USDTAddress, dex.FeeLow, one)
			nativeBefore := env.State.GetBalance(simulation.Alice)
			poolBefore, err := env.Router.Pool(env.State, simulation.WETHAddress, simulation.USDTAddress, dex.FeeLow)
			Expect(err).NotTo(HaveOccurred())

			receipt, _, err := swap(env, simulation.Alice, one, facilitator.SwapParams{
				OutputAsset:   simulation.USDTAddress,
				MinimumOutput: new(uint256.Int).AddUint64(q, 1),
				FeeTier:       dex.FeeLow,
				PaymentAmount: one,
			})
			Expect(err).To(MatchError(facilitator.ErrSlippageExceeded))
			Expect(receipt).To(BeNil())

			Expect(env.State.GetBalance(simulation.Alice)).To(Equal(nativeBefore))
			Expect(tokenBalance(env, simulation.USDTAddress, simulation.Alice).IsZero()).To(BeTrue())
			poolAfter, err := env.Router.Pool(env.State, simulation.WETHAddress, simulation.USDTAddress, dex.FeeLow)
			Expect(err).NotTo(HaveOccurred())
			Expect(poolAfter).To(Equal(poolBefore))
		})

		It("should give identical outcomes for identical requests under identical conditions", func() {
			other := newEnv()
			Expect(initialize(other, simulation.RouterAddress, simulation.WETHAddress)).To(Succeed())

			params := facilitator.SwapParams{
				OutputAsset:   simulation.USDTAddress,
				MinimumOutput: uint256.NewInt(1),
				FeeTier:       dex.FeeLow,
				PaymentAmount: one,
			}
			_, first, err := swap(env, simulation.Alice, one, params)
			Expect(err).NotTo(HaveOccurred())
			_, second, err := swap(other, simulation.Alice, one, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))

			params.MinimumOutput = simulation.Units(1_000_000, 6)
			_, _, err = swap(env, simulation.Bob, one, params)
			Expect(err).To(MatchError(facilitator.ErrSlippageExceeded))
			_, _, err = swap(env, simulation.Bob, one, params)
			Expect(err).To(MatchError(facilitator.ErrSlippageExceeded))
		})

		DescribeTable("should reject invalid payments",
			func(value, payment *uint256.Int) {
				nativeBefore := env.State.GetBalance(simulation.Alice)
				_, _, err := swap(env, simulation.Alice, value, facilitator.SwapParams{
					OutputAsset:   simulation.USDTAddress,
					FeeTier:       dex.FeeLow,
					PaymentAmount: payment,
				})
				Expect(err).To(MatchError(facilitator.ErrInvalidPayment))
				Expect(env.State.GetBalance(simulation.Alice)).To(Equal(nativeBefore))
			},
			Entry("zero payment", uint256.NewInt(0), uint256.NewInt(0)),
			Entry("payment above the attached value", uint256.NewInt(1), uint256.NewInt(2)),
			Entry("payment below the attached value", uint256.NewInt(2), uint256.NewInt(1)),
			Entry("missing payment", uint256.NewInt(1), nil),
		)

		It("should reject a zero output asset", func() {
			_, _, err := swap(env, simulation.Alice, one, facilitator.SwapParams{
				FeeTier:       dex.FeeLow,
				PaymentAmount: one,
			})
			Expect(err).To(MatchError(facilitator.ErrInvalidOutputAsset))
		})

		It("should reject an output asset that is not a token", func() {
			_, _, err := swap(env, simulation.Alice, one, facilitator.SwapParams{
				OutputAsset:   simulation.Bob,
				FeeTier:       dex.FeeLow,
				PaymentAmount: one,
			})
			Expect(err).To(MatchError(facilitator.ErrInvalidOutputAsset))
		})

		DescribeTable("should report RouterFailure when the router cannot route",
			func(asset common.Address, fee uint32) {
				_, _, err := swap(env, simulation.Alice, one, facilitator.SwapParams{
					OutputAsset:   asset,
					FeeTier:       fee,
					PaymentAmount: one,
				})
				Expect(err).To(MatchError(facilitator.ErrRouterFailure))
			},
			Entry("fee tier without a pool", simulation.USDTAddress, dex.FeeHigh),
			Entry("unsupported fee tier", simulation.USDTAddress, uint32(42)),
			Entry("token without a pool", simulation.UnlistedAddress, dex.FeeLow),
			Entry("wrapped native as output", simulation.WETHAddress, dex.FeeLow),
		)

		It("should report RouterFailure when the router overstates its output", func() {
			env.Chain.Register(inflatingRouter{Router: env.Router})

			_, _, err := swap(env, simulation.Alice, one, facilitator.SwapParams{
				OutputAsset:   simulation.USDTAddress,
				FeeTier:       dex.FeeLow,
				PaymentAmount: one,
			})
			Expect(err).To(MatchError(facilitator.ErrRouterFailure))
		})

		It("should not trust a router that claims success without paying", func() {
			env.Chain.Register(silentRouter{Router: env.Router})

			_, _, err := swap(env, simulation.Alice, one, facilitator.SwapParams{
				OutputAsset:   simulation.USDTAddress,
				MinimumOutput: uint256.NewInt(1),
				FeeTier:       dex.FeeLow,
				PaymentAmount: one,
			})
			Expect(err).To(MatchError(facilitator.ErrSlippageExceeded))
		})

		It("should map a rejected wrap to InvalidPayment", func() {
			env.Chain.Register(rejectingWETH{WETH: env.WETH})

			_, _, err := swap(env, simulation.Alice, one, facilitator.SwapParams{
				OutputAsset:   simulation.USDTAddress,
				FeeTier:       dex.FeeLow,
				PaymentAmount: one,
			})
			Expect(err).To(MatchError(facilitator.ErrInvalidPayment))
		})

		It("should block reentrant swaps and fail the forwarding transfer", func() {
			addr := common.HexToAddress("0x0000000000000000000000000000000000ee0001")
			evil := &reentrantToken{
				ERC20:       token.NewERC20(addr, "Reentrant", "EVIL", 18),
				facilitator: env.Facilitator,
			}
			env.Chain.Register(evil)
			env.Tokens[addr] = evil.ERC20
			Expect(evil.Mint(env.State, simulation.LiquidityProvider, simulation.Ether(1000))).To(Succeed())
			env.State.Commit()
			Expect(env.AddLiquidity(ctx(), simulation.LiquidityProvider, simulation.WETHAddress, addr,
				dex.FeeLow, simulation.Ether(100), simulation.Ether(1000))).To(Succeed())

			nativeBefore := env.State.GetBalance(simulation.Alice)
			_, _, err := swap(env, simulation.Alice, one, facilitator.SwapParams{
				OutputAsset:   addr,
				FeeTier:       dex.FeeLow,
				PaymentAmount: one,
			})
			Expect(err).To(MatchError(facilitator.ErrTransferFailure))
			Expect(err.Error()).To(ContainSubstring(facilitator.ErrReentrantCall.Error()))
			Expect(env.State.GetBalance(simulation.Alice)).To(Equal(nativeBefore))
		})
	})
})
