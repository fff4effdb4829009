package sim

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Process", func() {
	var env *Environment

	BeforeEach(func() {
		env = NewEnvironment()
	})

	It("should run the body and expose its return value", func() {
		p := env.Process("worker", func(*Process) (any, error) {
			return "done", nil
		})

		Expect(p.Done()).To(BeFalse())
		Expect(env.Run()).To(Succeed())
		Expect(p.Done()).To(BeTrue())
		Expect(p.Value()).To(Equal("done"))
		Expect(p.Err()).To(BeNil())
	})

	It("should keep the given name and generate one when empty", func() {
		named := env.Process("loader", func(*Process) (any, error) {
			return nil, nil
		})
		anon := env.Process("", func(*Process) (any, error) {
			return nil, nil
		})

		Expect(named.Name()).To(Equal("loader"))
		Expect(anon.Name()).To(ContainSubstring("process["))
	})

	It("should reject a malformed name", func() {
		Expect(func() {
			env.Process("Loader", func(*Process) (any, error) {
				return nil, nil
			})
		}).To(Panic())
	})

	It("should panic when spawned without a body", func() {
		Expect(func() { env.Process("empty", nil) }).To(Panic())
	})

	It("should resume at the time its awaited event fires", func() {
		var times []VTime

		env.Process("sleeper", func(p *Process) (any, error) {
			times = append(times, p.Env().Now())

			if _, err := p.Wait(env.Timeout(3)); err != nil {
				return nil, err
			}
			times = append(times, p.Env().Now())

			if _, err := p.Wait(env.Timeout(4)); err != nil {
				return nil, err
			}
			times = append(times, p.Env().Now())

			return nil, nil
		})

		Expect(env.Run()).To(Succeed())
		Expect(times).To(Equal([]VTime{0, 3, 7}))
	})

	It("should receive the value of the awaited event", func() {
		var got any

		env.Process("receiver", func(p *Process) (any, error) {
			v, err := p.Wait(env.TimeoutValue(1, "payload"))
			if err != nil {
				return nil, err
			}
			got = v

			return nil, nil
		})

		Expect(env.Run()).To(Succeed())
		Expect(got).To(Equal("payload"))
	})

	It("should not preempt the spawning body", func() {
		var order []string

		env.Process("parent", func(p *Process) (any, error) {
			order = append(order, "parent:pre")

			env.Process("child", func(*Process) (any, error) {
				order = append(order, "child:run")
				return nil, nil
			})

			order = append(order, "parent:post")

			if _, err := p.Wait(env.Timeout(0)); err != nil {
				return nil, err
			}
			order = append(order, "parent:resumed")

			return nil, nil
		})

		Expect(env.Run()).To(Succeed())
		Expect(order).To(Equal([]string{
			"parent:pre",
			"parent:post",
			"child:run",
			"parent:resumed",
		}))
	})

	It("should compose waiting on a sub-process like waiting on an event", func() {
		var got any

		env.Process("parent", func(p *Process) (any, error) {
			child := env.Process("child", func(cp *Process) (any, error) {
				if _, err := cp.Wait(env.Timeout(2)); err != nil {
					return nil, err
				}
				return 21, nil
			})

			v, err := p.Wait(child)
			if err != nil {
				return nil, err
			}
			got = v

			return nil, nil
		})

		Expect(env.Run()).To(Succeed())
		Expect(got).To(Equal(21))
	})

	It("should propagate a body error to waiters", func() {
		failure := errors.New("jam")
		var waitErr error

		child := env.Process("child", func(*Process) (any, error) {
			return nil, failure
		})
		env.Process("parent", func(p *Process) (any, error) {
			_, waitErr = p.Wait(child)
			return nil, nil
		})

		Expect(env.Run()).To(Succeed())
		Expect(child.Err()).To(MatchError(failure))
		Expect(waitErr).To(MatchError(failure))
	})

	It("should convert a body panic into a failed completion", func() {
		p := env.Process("crasher", func(*Process) (any, error) {
			panic("boom")
		})
		survivor := env.Timeout(1)

		Expect(env.Run()).To(Succeed())
		Expect(p.Done()).To(BeTrue())
		Expect(p.Err()).To(HaveOccurred())
		Expect(p.Err().Error()).To(ContainSubstring("panicked"))
		Expect(survivor.Processed()).To(BeTrue())
	})

	It("should return immediately when waiting on a processed event", func() {
		var times []VTime
		var got any

		early := env.TimeoutValue(1, "early")
		env.Process("latecomer", func(p *Process) (any, error) {
			if _, err := p.Wait(env.Timeout(2)); err != nil {
				return nil, err
			}

			v, err := p.Wait(early)
			if err != nil {
				return nil, err
			}
			got = v
			times = append(times, p.Env().Now())

			return nil, nil
		})

		Expect(env.Run()).To(Succeed())
		Expect(got).To(Equal("early"))
		Expect(times).To(Equal([]VTime{2}))
	})

	It("should fail the completion when waiting on a foreign event", func() {
		other := NewEnvironment()
		foreign := other.NewEvent()

		p := env.Process("confused", func(p *Process) (any, error) {
			return p.Wait(foreign)
		})

		Expect(env.Run()).To(Succeed())
		Expect(p.Err()).To(HaveOccurred())
		Expect(p.Err().Error()).To(ContainSubstring("panicked"))
	})

	It("should resume same-time zero-delay loops in spawn order", func() {
		var order []string

		spawn := func(label string) {
			env.Process(label, func(p *Process) (any, error) {
				for i := 0; i < 3; i++ {
					if _, err := p.Wait(env.Timeout(0)); err != nil {
						return nil, err
					}
					order = append(order, label)
				}
				return nil, nil
			})
		}

		spawn("p1")
		spawn("p2")

		Expect(env.Run()).To(Succeed())
		Expect(order).To(Equal([]string{
			"p1", "p2",
			"p1", "p2",
			"p1", "p2",
		}))
	})
})
