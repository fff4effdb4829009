package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Gate", func() {
	var env *Environment

	BeforeEach(func() {
		env = NewEnvironment()
	})

	It("should start armed", func() {
		gate := NewGate(env)

		Expect(gate.Armed()).To(BeTrue())
		Expect(gate.WaitEvent().Pending()).To(BeTrue())
	})

	It("should fire the current event on signal", func() {
		gate := NewGate(env)
		evt := gate.WaitEvent()

		gate.Signal("go")

		Expect(gate.Armed()).To(BeFalse())
		Expect(evt.Triggered()).To(BeTrue())

		Expect(env.Run()).To(Succeed())
		Expect(evt.Value()).To(Equal("go"))
	})

	It("should panic on a second signal before reset", func() {
		gate := NewGate(env)
		gate.Signal(nil)

		Expect(func() { gate.Signal(nil) }).To(Panic())
	})

	It("should panic when reset before any signal", func() {
		gate := NewGate(env)

		Expect(func() { gate.Reset() }).To(Panic())
	})

	It("should arm a fresh event on reset", func() {
		gate := NewGate(env)
		old := gate.WaitEvent()

		gate.Signal(nil)
		gate.Reset()

		Expect(gate.Armed()).To(BeTrue())
		Expect(gate.WaitEvent()).NotTo(BeIdenticalTo(old))
		Expect(old.Triggered()).To(BeTrue())
	})

	It("should not disturb waiters resolved against an old event", func() {
		gate := NewGate(env)
		var rounds []any

		env.Process("waiter", func(p *Process) (any, error) {
			for i := 0; i < 2; i++ {
				v, err := p.Wait(gate)
				if err != nil {
					return nil, err
				}
				rounds = append(rounds, v)
			}
			return nil, nil
		})
		env.Process("signaller", func(p *Process) (any, error) {
			if _, err := p.Wait(env.Timeout(1)); err != nil {
				return nil, err
			}
			gate.Signal("first")
			gate.Reset()

			if _, err := p.Wait(env.Timeout(2)); err != nil {
				return nil, err
			}
			gate.Signal("second")

			return nil, nil
		})

		Expect(env.Run()).To(Succeed())
		Expect(rounds).To(Equal([]any{"first", "second"}))
	})

	It("should serve simultaneous signals from two gates to one condition", func() {
		truck := NewGate(env)
		van := NewGate(env)
		var observed int

		env.Process("crew", func(p *Process) (any, error) {
			v, err := p.Wait(AnyOf(env, truck, van))
			if err != nil {
				return nil, err
			}
			observed = v.(*ConditionValue).Len()

			return nil, nil
		})
		env.Process("arrivals", func(p *Process) (any, error) {
			if _, err := p.Wait(env.Timeout(2)); err != nil {
				return nil, err
			}
			truck.Signal("truck")
			van.Signal("van")

			return nil, nil
		})

		Expect(env.Run()).To(Succeed())
		Expect(observed).To(Equal(2))
	})
})
