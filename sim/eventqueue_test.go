package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("EventQueue", func() {
	var (
		env   *Environment
		queue *eventQueue
	)

	BeforeEach(func() {
		env = NewEnvironment()
		queue = newEventQueue()
	})

	It("should start empty", func() {
		Expect(queue.len()).To(Equal(0))
		Expect(queue.peek()).To(BeNil())
	})

	It("should pop the earliest time first", func() {
		queue.push(3, PriorityNormal, env.NewEvent())
		queue.push(1, PriorityNormal, env.NewEvent())
		queue.push(2, PriorityNormal, env.NewEvent())

		Expect(queue.pop().time).To(Equal(VTime(1)))
		Expect(queue.pop().time).To(Equal(VTime(2)))
		Expect(queue.pop().time).To(Equal(VTime(3)))
	})

	It("should break time ties by priority", func() {
		queue.push(1, PriorityNormal, env.NewEvent())
		queue.push(1, PriorityUrgent, env.NewEvent())

		Expect(queue.pop().priority).To(Equal(PriorityUrgent))
		Expect(queue.pop().priority).To(Equal(PriorityNormal))
	})

	It("should break full ties by insertion order", func() {
		first := env.NewEvent()
		second := env.NewEvent()
		third := env.NewEvent()

		queue.push(1, PriorityNormal, first)
		queue.push(1, PriorityNormal, second)
		queue.push(1, PriorityNormal, third)

		Expect(queue.pop().event).To(BeIdenticalTo(first))
		Expect(queue.pop().event).To(BeIdenticalTo(second))
		Expect(queue.pop().event).To(BeIdenticalTo(third))
	})

	It("should assign strictly increasing sequence numbers", func() {
		queue.push(5, PriorityNormal, env.NewEvent())
		queue.push(1, PriorityNormal, env.NewEvent())

		first := queue.pop()
		second := queue.pop()

		Expect(first.time).To(Equal(VTime(1)))
		Expect(first.seq).To(Equal(uint64(1)))
		Expect(second.seq).To(Equal(uint64(0)))
	})

	It("should peek without removing", func() {
		queue.push(2, PriorityNormal, env.NewEvent())

		Expect(queue.peek().time).To(Equal(VTime(2)))
		Expect(queue.len()).To(Equal(1))
	})
})
