package doctor_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/ccbridge/internal/doctor"
)

var _ = Describe("Registry", func() {
	var registry *doctor.Registry

	BeforeEach(func() {
		registry = doctor.NewRegistry()
		registry.RegisterChecker(&stubChecker{name: "tmux", category: doctor.CategoryTools})
		registry.RegisterChecker(&stubChecker{name: "session", category: doctor.CategorySession})
		registry.RegisterChecker(&stubChecker{name: "notify-hook", category: doctor.CategoryHook})
		registry.RegisterChecker(&stubChecker{name: "approve-hook", category: doctor.CategoryHook})
	})

	It("returns checkers in registration order", func() {
		names := make([]string, 0, 4)
		for _, c := range registry.Checkers() {
			names = append(names, c.Name())
		}

		Expect(names).To(Equal([]string{"tmux", "session", "notify-hook", "approve-hook"}))
		Expect(registry.CheckerCount()).To(Equal(4))
	})

	It("filters by category", func() {
		checkers := registry.CheckersForCategories([]doctor.Category{doctor.CategoryHook})
		Expect(checkers).To(HaveLen(2))

		for _, c := range checkers {
			Expect(c.Category()).To(Equal(doctor.CategoryHook))
		}
	})

	It("returns all checkers for no categories", func() {
		Expect(registry.CheckersForCategories(nil)).To(HaveLen(4))
	})

	It("returns none for an unused category", func() {
		Expect(registry.CheckersForCategories([]doctor.Category{doctor.CategoryLog})).To(BeEmpty())
	})

	It("runs all checkers keeping order and setting categories", func() {
		results := registry.RunAll(context.Background())
		Expect(results).To(HaveLen(4))
		Expect(results[0].Name).To(Equal("tmux"))
		Expect(results[0].Category).To(Equal(doctor.CategoryTools))
		Expect(results[3].Name).To(Equal("approve-hook"))
		Expect(results[3].Category).To(Equal(doctor.CategoryHook))
	})

	It("runs only the requested categories", func() {
		results := registry.RunCategories(
			context.Background(),
			[]doctor.Category{doctor.CategorySession},
		)
		Expect(results).To(HaveLen(1))
		Expect(results[0].Name).To(Equal("session"))
	})

	It("registers and looks up fixers", func() {
		registry.RegisterFixer(&stubFixer{id: "install_hooks"})

		fixer, ok := registry.GetFixer("install_hooks")
		Expect(ok).To(BeTrue())
		Expect(fixer.ID()).To(Equal("install_hooks"))
		Expect(registry.FixerCount()).To(Equal(1))

		_, ok = registry.GetFixer("missing")
		Expect(ok).To(BeFalse())
	})
})
