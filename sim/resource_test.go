package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("Resource", func() {
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
		Expect(func() { NewResource(env, 0) }).To(Panic())
	})

	It("should grant immediately while under capacity", func() {
		res := NewResource(env, 2)

		first := res.Acquire()
		second := res.Acquire()

		Expect(first.WaitEvent().Triggered()).To(BeTrue())
		Expect(second.WaitEvent().Triggered()).To(BeTrue())
		Expect(res.Holders()).To(Equal(2))
		Expect(res.Pending()).To(Equal(0))
	})

	It("should queue requests beyond capacity", func() {
		res := NewResource(env, 1)

		res.Acquire()
		waiting := res.Acquire()

		Expect(waiting.WaitEvent().Pending()).To(BeTrue())
		Expect(res.Holders()).To(Equal(1))
		Expect(res.Pending()).To(Equal(1))
	})

	It("should hand capacity to the next waiter at release time", func() {
		res := NewResource(env, 1)
		acquiredAt := make(map[string]VTime)

		env.Process("p1", func(p *Process) (any, error) {
			req := res.Acquire()
			if _, err := p.Wait(req); err != nil {
				return nil, err
			}
			acquiredAt["p1"] = env.Now()

			if _, err := p.Wait(env.Timeout(5)); err != nil {
				return nil, err
			}
			res.Release(req)

			return nil, nil
		})
		env.Process("p2", func(p *Process) (any, error) {
			req := res.Acquire()
			if _, err := p.Wait(req); err != nil {
				return nil, err
			}
			acquiredAt["p2"] = env.Now()
			res.Release(req)

			return nil, nil
		})

		Expect(env.Run()).To(Succeed())
		Expect(acquiredAt["p1"]).To(Equal(VTime(0)))
		Expect(acquiredAt["p2"]).To(Equal(VTime(5)))
	})

	It("should grant queued requests in request order", func() {
		res := NewResource(env, 2)
		var order []string
		maxHolders := 0

		for _, name := range []string{"w1", "w2", "w3", "w4", "w5"} {
			env.Process(name, func(p *Process) (any, error) {
				req := res.Acquire()
				if _, err := p.Wait(req); err != nil {
					return nil, err
				}

				order = append(order, p.Name())
				if res.Holders() > maxHolders {
					maxHolders = res.Holders()
				}

				if _, err := p.Wait(env.Timeout(1)); err != nil {
					return nil, err
				}
				res.Release(req)

				return nil, nil
			})
		}

		Expect(env.Run()).To(Succeed())
		Expect(order).To(Equal([]string{"w1", "w2", "w3", "w4", "w5"}))
		Expect(maxHolders).To(BeNumerically("<=", 2))
		Expect(res.Holders()).To(Equal(0))
	})

	It("should skip cancelled requests on release", func() {
		res := NewResource(env, 1)

		first := res.Acquire()
		second := res.Acquire()
		third := res.Acquire()

		second.Cancel()
		res.Release(first)

		Expect(third.WaitEvent().Triggered()).To(BeTrue())
		Expect(res.Holders()).To(Equal(1))
		Expect(res.Pending()).To(Equal(0))
	})

	It("should panic when cancelling a granted request", func() {
		res := NewResource(env, 1)
		req := res.Acquire()

		Expect(func() { req.Cancel() }).To(Panic())
	})

	It("should panic when releasing a request that holds nothing", func() {
		res := NewResource(env, 1)
		res.Acquire()
		waiting := res.Acquire()

		Expect(func() { res.Release(waiting) }).To(Panic())
	})

	It("should panic on a double release", func() {
		res := NewResource(env, 1)
		req := res.Acquire()

		res.Release(req)

		Expect(func() { res.Release(req) }).To(Panic())
	})

	It("should report acquisitions and releases to hooks", func() {
		res := NewResource(env, 1)
		var positions []*HookPos

		hook := NewMockHook(mockCtrl)
		hook.EXPECT().
			Func(gomock.Any()).
			Do(func(ctx HookCtx) { positions = append(positions, ctx.Pos) }).
			AnyTimes()

		res.AcceptHook(hook)
		req := res.Acquire()
		res.Release(req)

		Expect(positions).To(Equal([]*HookPos{
			HookPosResourceAcquire,
			HookPosResourceRelease,
		}))
	})
})
