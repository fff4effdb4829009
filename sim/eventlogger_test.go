package sim

import (
	"bytes"
	"errors"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("EventLogger", func() {
	var (
		env *Environment
		buf bytes.Buffer
	)

	BeforeEach(func() {
		env = NewEnvironment()
		buf.Reset()
		env.AcceptHook(NewEventLogger(log.New(&buf, "", 0)))
	})

	It("should print one line per processed event", func() {
		env.Timeout(1)
		env.Timeout(2)

		Expect(env.Run()).To(Succeed())
		Expect(bytes.Count(buf.Bytes(), []byte("\n"))).To(Equal(2))
	})

	It("should print the time, priority, and sequence of the entry", func() {
		env.Timeout(1.5)

		Expect(env.Run()).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("1.5000000000"))
		Expect(buf.String()).To(ContainSubstring("prio 1"))
		Expect(buf.String()).To(ContainSubstring("seq 0"))
	})

	It("should print the outcome value", func() {
		env.TimeoutValue(1, "cargo")

		Expect(env.Run()).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("fired with cargo"))
	})

	It("should print failures", func() {
		env.NewEvent().Fail(errors.New("jam"))

		Expect(env.Run()).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("failed: jam"))
	})
})
