package dispatcher_test

import (
	"bytes"
	"context"
	"strings"
	"testing/iotest"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/smykla-skalski/ccbridge/internal/control"
	"github.com/smykla-skalski/ccbridge/internal/dispatcher"
	"github.com/smykla-skalski/ccbridge/internal/parser"
	"github.com/smykla-skalski/ccbridge/internal/session"
	"github.com/smykla-skalski/ccbridge/pkg/hook"
)

const allowJSON = `{"hookSpecificOutput":{"permissionDecision":"allow","permissionDecisionReason":"Rocket mode enabled"}}`

type minerFunc func(path string) hook.ToolInvocation

func (f minerFunc) Mine(path string) hook.ToolInvocation { return f(path) }

var _ = Describe("NotifyHook", func() {
	var (
		ctrl     *gomock.Controller
		resolver *session.MockResolver
		notifier *control.MockNotifier
		mined    []string
		miner    minerFunc
		ctx      context.Context
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		resolver = session.NewMockResolver(ctrl)
		notifier = control.NewMockNotifier(ctrl)
		mined = nil
		miner = func(path string) hook.ToolInvocation {
			mined = append(mined, path)

			return hook.ToolInvocation{Name: "Bash", Input: map[string]any{"command": "ls"}}
		}
		ctx = context.Background()
	})

	newHook := func() *dispatcher.NotifyHook {
		return dispatcher.NewNotifyHook(resolver, miner, notifier, nil)
	}

	It("should do nothing outside a managed session", func() {
		resolver.EXPECT().Resolve(gomock.Any()).Return("", false)

		stdin := iotest.ErrReader(errors.New("stdin must not be read"))
		Expect(newHook().Run(ctx, stdin)).To(Succeed())
		Expect(mined).To(BeEmpty())
	})

	It("should mine the transcript and notify", func() {
		resolver.EXPECT().Resolve(gomock.Any()).Return("abc123", true)
		notifier.EXPECT().Notify(gomock.Any(), "abc123", hook.ToolInvocation{
			Name:  "Bash",
			Input: map[string]any{"command": "ls"},
		})

		stdin := strings.NewReader(`{"message":"Claude needs your permission to use Bash","transcript_path":"/tmp/t.jsonl","session_id":"s"}`)
		Expect(newHook().Run(ctx, stdin)).To(Succeed())
		Expect(mined).To(Equal([]string{"/tmp/t.jsonl"}))
	})

	It("should notify with an empty invocation when there is no transcript path", func() {
		resolver.EXPECT().Resolve(gomock.Any()).Return("abc123", true)
		notifier.EXPECT().Notify(gomock.Any(), "abc123", hook.ToolInvocation{})

		Expect(newHook().Run(ctx, strings.NewReader(`{"message":"idle"}`))).To(Succeed())
		Expect(mined).To(BeEmpty())
	})

	It("should notify even when nothing is mined", func() {
		miner = func(string) hook.ToolInvocation { return hook.ToolInvocation{} }
		resolver.EXPECT().Resolve(gomock.Any()).Return("abc123", true)
		notifier.EXPECT().Notify(gomock.Any(), "abc123", hook.ToolInvocation{})

		Expect(newHook().Run(ctx, strings.NewReader(`{"transcript_path":"/missing"}`))).To(Succeed())
	})

	DescribeTable("malformed stdin is fatal",
		func(input string, sentinel error) {
			resolver.EXPECT().Resolve(gomock.Any()).Return("abc123", true)

			err := newHook().Run(ctx, strings.NewReader(input))
			Expect(errors.Is(err, sentinel)).To(BeTrue())
		},
		Entry("empty", "", parser.ErrEmptyInput),
		Entry("whitespace", "  \n", parser.ErrEmptyInput),
		Entry("truncated", `{"transcript_path":`, parser.ErrInvalidJSON),
		Entry("not an object", `["x"]`, parser.ErrInvalidJSON),
	)
})

var _ = Describe("ApprovalGate", func() {
	var (
		ctrl     *gomock.Controller
		resolver *session.MockResolver
		querier  *control.MockOverrideQuerier
		stdout   *bytes.Buffer
		ctx      context.Context
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		resolver = session.NewMockResolver(ctrl)
		querier = control.NewMockOverrideQuerier(ctrl)
		stdout = &bytes.Buffer{}
		ctx = context.Background()
	})

	newGate := func() *dispatcher.ApprovalGate {
		return dispatcher.NewApprovalGate(resolver, querier, nil)
	}

	It("should write nothing outside a managed session", func() {
		resolver.EXPECT().Resolve(gomock.Any()).Return("", false)

		Expect(newGate().Run(ctx, stdout)).To(Succeed())
		Expect(stdout.Len()).To(BeZero())
	})

	It("should allow when rocket mode is on", func() {
		resolver.EXPECT().Resolve(gomock.Any()).Return("abc123", true)
		querier.EXPECT().QueryOverride(gomock.Any(), "abc123").Return(true)

		Expect(newGate().Run(ctx, stdout)).To(Succeed())
		Expect(stdout.String()).To(Equal(allowJSON))
	})

	It("should write nothing when rocket mode is off", func() {
		resolver.EXPECT().Resolve(gomock.Any()).Return("abc123", true)
		querier.EXPECT().QueryOverride(gomock.Any(), "abc123").Return(false)

		Expect(newGate().Run(ctx, stdout)).To(Succeed())
		Expect(stdout.Len()).To(BeZero())
	})
})

var _ = Describe("Dispatcher", func() {
	var (
		ctrl     *gomock.Controller
		resolver *session.MockResolver
		querier  *control.MockOverrideQuerier
		notifier *control.MockNotifier
		stdout   *bytes.Buffer
		disp     *dispatcher.Dispatcher
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		resolver = session.NewMockResolver(ctrl)
		querier = control.NewMockOverrideQuerier(ctrl)
		notifier = control.NewMockNotifier(ctrl)
		stdout = &bytes.Buffer{}

		miner := minerFunc(func(string) hook.ToolInvocation { return hook.ToolInvocation{} })
		disp = dispatcher.NewDispatcher(
			dispatcher.NewNotifyHook(resolver, miner, notifier, nil),
			dispatcher.NewApprovalGate(resolver, querier, nil),
			nil,
		)
	})

	It("should route PreToolUse to the approval gate", func() {
		resolver.EXPECT().Resolve(gomock.Any()).Return("abc", true)
		querier.EXPECT().QueryOverride(gomock.Any(), "abc").Return(true)

		err := disp.Dispatch(context.Background(), hook.PreToolUse, strings.NewReader(""), stdout)
		Expect(err).NotTo(HaveOccurred())
		Expect(stdout.String()).To(Equal(allowJSON))
	})

	It("should route Notification to the notify hook", func() {
		resolver.EXPECT().Resolve(gomock.Any()).Return("abc", true)
		notifier.EXPECT().Notify(gomock.Any(), "abc", hook.ToolInvocation{})

		err := disp.Dispatch(context.Background(), hook.Notification, strings.NewReader(`{}`), stdout)
		Expect(err).NotTo(HaveOccurred())
		Expect(stdout.Len()).To(BeZero())
	})

	It("should reject unknown events", func() {
		err := disp.Dispatch(context.Background(), hook.EventType("Stop"), nil, stdout)
		Expect(errors.Is(err, dispatcher.ErrUnknownEvent)).To(BeTrue())
	})

	It("should turn a panic into an error and never allow", func() {
		resolver.EXPECT().Resolve(gomock.Any()).Return("abc", true)
		querier.EXPECT().QueryOverride(gomock.Any(), "abc").DoAndReturn(
			func(context.Context, string) bool { panic("boom") },
		)

		err := disp.Dispatch(context.Background(), hook.PreToolUse, nil, stdout)
		Expect(errors.Is(err, dispatcher.ErrPanic)).To(BeTrue())

		var panicErr *dispatcher.PanicError
		Expect(errors.As(err, &panicErr)).To(BeTrue())
		Expect(panicErr.Value).To(Equal("boom"))
		Expect(stdout.Len()).To(BeZero())
	})
})
