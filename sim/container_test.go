package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("Container", func() {
	var (
		mockCtrl *gomock.Controller
		env      *Environment
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		env = NewEnvironment()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should panic on a non-positive capacity", func() {
		Expect(func() { NewContainer(env, 0, 0) }).To(Panic())
	})

	It("should panic on an initial level outside the capacity", func() {
		Expect(func() { NewContainer(env, 10, -1) }).To(Panic())
		Expect(func() { NewContainer(env, 10, 11) }).To(Panic())
	})

	It("should panic on non-positive amounts", func() {
		tank := NewContainer(env, 10, 5)

		Expect(func() { tank.Get(0) }).To(Panic())
		Expect(func() { tank.Put(-1) }).To(Panic())
	})

	It("should start at the initial level", func() {
		tank := NewContainer(env, 10, 4)

		Expect(tank.Level()).To(Equal(4.0))
		Expect(tank.Capacity()).To(Equal(10.0))
	})

	It("should satisfy covered requests immediately", func() {
		tank := NewContainer(env, 10, 4)

		put := tank.Put(3)
		get := tank.Get(5)

		Expect(put.Triggered()).To(BeTrue())
		Expect(get.Triggered()).To(BeTrue())
		Expect(get.Value()).To(Equal(5.0))
		Expect(tank.Level()).To(Equal(2.0))
	})

	It("should block later withdrawals behind an unsatisfied head", func() {
		tank := NewContainer(env, 10, 5)

		big := tank.Get(10)
		small := tank.Get(2)

		Expect(big.Pending()).To(BeTrue())
		Expect(small.Pending()).To(BeTrue())
		Expect(tank.PendingGets()).To(Equal(2))
		Expect(tank.Level()).To(Equal(5.0))
	})

	It("should block later deposits behind an unsatisfied head", func() {
		tank := NewContainer(env, 10, 8)

		big := tank.Put(5)
		small := tank.Put(2)

		Expect(big.Pending()).To(BeTrue())
		Expect(small.Pending()).To(BeTrue())
		Expect(tank.PendingPuts()).To(Equal(2))
		Expect(tank.Level()).To(Equal(8.0))
	})

	It("should drain the head withdrawal once the level suffices", func() {
		tank := NewContainer(env, 10, 5)
		big := tank.Get(10)
		small := tank.Get(2)

		tank.Put(5)

		Expect(big.Triggered()).To(BeTrue())
		Expect(big.Value()).To(Equal(10.0))
		Expect(small.Pending()).To(BeTrue())
		Expect(tank.Level()).To(Equal(0.0))
	})

	It("should release a queued withdrawal the instant the level suffices", func() {
		tank := NewContainer(env, 10, 0)
		var got any
		var gotAt VTime
		var levelAfter float64

		env.Process("consumer", func(p *Process) (any, error) {
			v, err := p.Wait(tank.Get(8))
			if err != nil {
				return nil, err
			}
			got = v
			gotAt = env.Now()
			levelAfter = tank.Level()

			return nil, nil
		})
		env.Process("filler", func(p *Process) (any, error) {
			if _, err := p.Wait(tank.Put(6)); err != nil {
				return nil, err
			}
			if _, err := p.Wait(env.Timeout(1)); err != nil {
				return nil, err
			}
			if _, err := p.Wait(tank.Put(4)); err != nil {
				return nil, err
			}
			return nil, nil
		})

		Expect(env.Run()).To(Succeed())
		Expect(got).To(Equal(8.0))
		Expect(gotAt).To(Equal(VTime(1)))
		Expect(levelAfter).To(Equal(2.0))
	})

	It("should report level changes to hooks", func() {
		tank := NewContainer(env, 10, 0)
		type change struct {
			pos   *HookPos
			level float64
		}
		var changes []change

		hook := NewMockHook(mockCtrl)
		hook.EXPECT().
			Func(gomock.Any()).
			Do(func(ctx HookCtx) {
				changes = append(changes, change{ctx.Pos, ctx.Detail.(float64)})
			}).
			AnyTimes()

		tank.AcceptHook(hook)
		tank.Put(6)
		tank.Get(2)

		Expect(changes).To(Equal([]change{
			{HookPosContainerPut, 6},
			{HookPosContainerGet, 4},
		}))
	})
})
