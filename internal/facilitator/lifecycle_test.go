package facilitator_test

import (
	"github.com/ethereum/go-ethereum/common"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dwarvesf/swappy/internal/chain"
	"github.com/dwarvesf/swappy/internal/facilitator"
	"github.com/dwarvesf/swappy/internal/simulation"
)

var _ = Describe("Lifecycle", func() {
	var env *simulation.Environment

	BeforeEach(func() {
		env = newEnv()
	})

	Context("before initialization", func() {
		It("should report NotInitialized from the configuration reads", func() {
			_, err := env.Facilitator.Router(env.State)
			Expect(err).To(MatchError(facilitator.ErrNotInitialized))

			_, err = env.Facilitator.WrappedNative(env.State)
			Expect(err).To(MatchError(facilitator.ErrNotInitialized))

			Expect(env.Facilitator.Config(env.State)).To(Equal(facilitator.Config{}))
		})

		It("should reject a zero router", func() {
			err := initialize(env, common.Address{}, simulation.WETHAddress)
			Expect(err).To(MatchError(facilitator.ErrInvalidConfiguration))
			Expect(env.Facilitator.Initialized(env.State)).To(BeFalse())
		})

		It("should reject a zero wrapped native token", func() {
			err := initialize(env, simulation.RouterAddress, common.Address{})
			Expect(err).To(MatchError(facilitator.ErrInvalidConfiguration))
			Expect(env.Facilitator.Initialized(env.State)).To(BeFalse())

			Expect(initialize(env, simulation.RouterAddress, simulation.WETHAddress)).To(Succeed())
		})
	})

	Context("after initialization", func() {
		BeforeEach(func() {
			Expect(initialize(env, simulation.RouterAddress, simulation.WETHAddress)).To(Succeed())
		})

		It("should store the router and wrapped native token", func() {
			router, err := env.Facilitator.Router(env.State)
			Expect(err).NotTo(HaveOccurred())
			Expect(router).To(Equal(simulation.RouterAddress))

			weth, err := env.Facilitator.WrappedNative(env.State)
			Expect(err).NotTo(HaveOccurred())
			Expect(weth).To(Equal(simulation.WETHAddress))
		})

		It("should keep the configuration in namespaced storage of the instance", func() {
			root := chain.NamespacedSlot(facilitator.StorageNamespace)
			slots := env.State.Storage(simulation.FacilitatorAddress)
			Expect(slots).To(HaveKeyWithValue(chain.SlotOffset(root, 0), chain.BoolToWord(true)))
			Expect(slots).To(HaveKeyWithValue(chain.SlotOffset(root, 1), chain.AddressToWord(simulation.RouterAddress)))
			Expect(slots).To(HaveKeyWithValue(chain.SlotOffset(root, 2), chain.AddressToWord(simulation.WETHAddress)))
		})

		It("should reject a second initialization and keep the configuration", func() {
			other := common.HexToAddress("0x0000000000000000000000000000000000000bad")
			Expect(initialize(env, other, other)).To(MatchError(facilitator.ErrAlreadyInitialized))
			Expect(initialize(env, common.Address{}, common.Address{})).To(MatchError(facilitator.ErrAlreadyInitialized))

			Expect(env.Facilitator.Config(env.State)).To(Equal(facilitator.Config{
				Initialized:   true,
				Router:        simulation.RouterAddress,
				WrappedNative: simulation.WETHAddress,
			}))
		})

		It("should stay initialized when the logic is replaced", func() {
			upgraded := facilitator.New(simulation.FacilitatorAddress)
			env.Chain.Register(upgraded)
			env.Facilitator = upgraded

			Expect(upgraded.Initialized(env.State)).To(BeTrue())
			Expect(initialize(env, simulation.RouterAddress, simulation.WETHAddress)).To(MatchError(facilitator.ErrAlreadyInitialized))
		})

		It("should stay initialized when the state is restored into a new process", func() {
			restored := chain.NewStateDB()
			exported := env.State.Export()
			for addr, bal := range exported.Accounts {
				restored.SetBalance(addr, bal)
			}
			for addr, slots := range exported.Slots {
				for k, v := range slots {
					restored.SetState(addr, k, v)
				}
			}
			restored.Commit()

			rebooted := simulation.New(simulation.DefaultGenesis(), restored)
			Expect(rebooted.Facilitator.Initialized(rebooted.State)).To(BeTrue())
			Expect(initialize(rebooted, simulation.RouterAddress, simulation.WETHAddress)).To(MatchError(facilitator.ErrAlreadyInitialized))
		})
	})
})
