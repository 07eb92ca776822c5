package aggregates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/marketplace-backend/internal/domain/aggregates"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
)

func TestExecuteWriteStatusAndCounters(t *testing.T) {
	productID := uuid.New()
	cases := []struct {
		name      string
		op        string
		body      error
		status    string
		conflicts int
		retries   int
	}{
		{
			name:   "cart add commits",
			op:     "Commerce.Cart.AddItem",
			status: "success",
		},
		{
			name: "partition lost the last unit",
			op:   "Commerce.Checkout.CommitStore",
			body: domainagg.NewProductError(domainagg.CodeStockConflict, "Commerce.Checkout.CommitStore", productID,
				"stock changed during checkout"),
			status:    string(domainagg.CodeStockConflict),
			conflicts: 1,
		},
		{
			name:      "cart line changed under checkout",
			op:        "Commerce.Checkout.CommitStore",
			body:      ConflictError("cart line changed during checkout"),
			status:    string(domainagg.CodeConflict),
			conflicts: 1,
		},
		{
			name: "product closed before commit",
			op:   "Commerce.Checkout.CommitStore",
			body: domainagg.NewProductError(domainagg.CodeProductUnavailable, "Commerce.Checkout.CommitStore", productID,
				"product became unavailable"),
			status: string(domainagg.CodeProductUnavailable),
		},
		{
			name:   "product vanished after decrement",
			op:     "Commerce.Checkout.CommitStore",
			body:   InvariantError("product vanished after stock decrement"),
			status: string(domainagg.CodeInvariantViolation),
		},
		{
			name:    "order row locked",
			op:      "Commerce.Order.Transition",
			body:    RetryableError("lock timeout"),
			status:  string(domainagg.CodeRetryable),
			retries: 1,
		},
		{
			name:   "unclassified failure",
			op:     "Moderation.Report.Create",
			body:   errors.New("disk on fire"),
			status: string(domainagg.CodeInternal),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hooks := &recordingHooks{}
			err := executeWrite(context.Background(), BaseDeps{Runner: passthroughRunner{}, Hooks: hooks}, tc.op,
				func(dbctx.Context) error { return tc.body })
			if (err == nil) != (tc.body == nil) {
				t.Fatalf("executeWrite: body=%v err=%v", tc.body, err)
			}
			if len(hooks.operations) != 1 {
				t.Fatalf("operations: want=1 got=%d", len(hooks.operations))
			}
			if got := hooks.operations[0]; got.name != tc.op || got.status != tc.status {
				t.Fatalf("operation: want=%s/%s got=%s/%s", tc.op, tc.status, got.name, got.status)
			}
			if len(hooks.conflicts) != tc.conflicts {
				t.Fatalf("conflicts: want=%d got=%v", tc.conflicts, hooks.conflicts)
			}
			if len(hooks.retries) != tc.retries {
				t.Fatalf("retries: want=%d got=%v", tc.retries, hooks.retries)
			}
		})
	}
}

func TestExecuteWriteKeepsProductOnDomainError(t *testing.T) {
	productID := uuid.New()
	err := executeWrite(context.Background(), BaseDeps{Runner: passthroughRunner{}}, "Commerce.Checkout.CommitStore",
		func(dbctx.Context) error {
			return domainagg.NewProductError(domainagg.CodeStockConflict, "Commerce.Checkout.CommitStore", productID, "lost race")
		})
	aggErr, ok := domainagg.As(err)
	if !ok || aggErr.ProductID != productID.String() {
		t.Fatalf("want product %s on error, got %v", productID, err)
	}
}

func TestExecuteWriteDefaultsBlankOp(t *testing.T) {
	hooks := &recordingHooks{}
	if err := executeWrite(context.Background(), BaseDeps{Runner: passthroughRunner{}, Hooks: hooks}, "  ",
		func(dbctx.Context) error { return nil }); err != nil {
		t.Fatalf("executeWrite: %v", err)
	}
	if len(hooks.operations) != 1 || hooks.operations[0].name != "aggregate.write" {
		t.Fatalf("operations: %+v", hooks.operations)
	}
}

func TestAggregateErrorStatus(t *testing.T) {
	cases := map[string]struct {
		err  error
		want string
	}{
		"nil":             {nil, "success"},
		"stock conflict":  {domainagg.NewError(domainagg.CodeStockConflict, "Commerce.Checkout.CommitStore", "x", nil), "stock_conflict"},
		"empty cart":      {domainagg.NewError(domainagg.CodeEmptyCart, "Commerce.Checkout", "cart is empty", nil), "empty_cart"},
		"tagged conflict": {ConflictError("x"), string(domainagg.CodeConflict)},
		"deadline":        {context.DeadlineExceeded, string(domainagg.CodeRetryable)},
	}
	for name, tc := range cases {
		if got := aggregateErrorStatus(tc.err); got != tc.want {
			t.Fatalf("%s: want=%s got=%s", name, tc.want, got)
		}
	}
}

type passthroughRunner struct{}

func (passthroughRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	return fn(dbctx.Context{Ctx: ctx})
}

type recordedOperation struct {
	name   string
	status string
}

type recordingHooks struct {
	operations []recordedOperation
	conflicts  []string
	retries    []string
}

func (h *recordingHooks) ObserveOperation(name, status string, _ time.Duration) {
	h.operations = append(h.operations, recordedOperation{name: name, status: status})
}

func (h *recordingHooks) IncConflict(name string) { h.conflicts = append(h.conflicts, name) }

func (h *recordingHooks) IncRetry(name string) { h.retries = append(h.retries, name) }
