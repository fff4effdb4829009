package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Ticker", func() {
	var env *Environment

	BeforeEach(func() {
		env = NewEnvironment()
	})

	It("should panic on a non-positive period", func() {
		Expect(func() { NewTicker(env, 0, func(VTime) {}) }).To(Panic())
	})

	It("should panic on a nil function", func() {
		Expect(func() { NewTicker(env, 1, nil) }).To(Panic())
	})

	It("should tick at every period once started", func() {
		var ticks []VTime

		ticker := NewTicker(env, 2, func(now VTime) {
			ticks = append(ticks, now)
		})
		ticker.Start()

		Expect(env.RunUntil(9)).To(Succeed())
		Expect(ticks).To(Equal([]VTime{2, 4, 6, 8}))
	})

	It("should not tick before being started", func() {
		NewTicker(env, 2, func(VTime) {
			Fail("tick before start")
		})

		Expect(env.Run()).To(Succeed())
	})

	It("should panic when started twice", func() {
		ticker := NewTicker(env, 1, func(VTime) {})
		ticker.Start()

		Expect(func() { ticker.Start() }).To(Panic())
	})

	It("should stop ticking after Stop", func() {
		var ticks []VTime

		var ticker *Ticker
		ticker = NewTicker(env, 1, func(now VTime) {
			ticks = append(ticks, now)
			if now >= 3 {
				ticker.Stop()
			}
		})
		ticker.Start()

		Expect(env.RunUntil(10)).To(Succeed())
		Expect(ticks).To(Equal([]VTime{1, 2, 3}))
	})
})
