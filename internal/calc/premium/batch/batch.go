package batch

import (
	"context"
	"fmt"
	"runtime"

	"Bearing/internal/calc/bearing"

	"golang.org/x/sync/errgroup"
)

// MaxItems bounds one batch request.
const MaxItems = 500

// Evaluator runs one bearing evaluation.
type Evaluator func(ctx context.Context, in bearing.Input) (bearing.Result, error)

func calculate(_ context.Context, in bearing.Input) (bearing.Result, error) {
	return bearing.Calculate(in)
}

type Input struct {
	Items []bearing.Input `json:"items"`
}

// Item is the outcome for the request at Index. Exactly one of Result and
// Error is set.
type Item struct {
	Index     int             `json:"index"`
	BearingID string          `json:"bearing_id,omitempty"`
	Result    *bearing.Result `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
}

type Result struct {
	Count  int    `json:"count"`
	Failed int    `json:"failed"`
	Passed int    `json:"passed"`
	Items  []Item `json:"items"`
}

// Calculate evaluates all items concurrently and returns them in request
// order. A fatal error in one item is recorded on that item only; the batch
// fails as a whole only when ctx is done.
func Calculate(ctx context.Context, in Input, eval Evaluator) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("no items")
	}
	if len(in.Items) > MaxItems {
		return Result{}, fmt.Errorf("too many items: %d > %d", len(in.Items), MaxItems)
	}
	if eval == nil {
		eval = calculate
	}

	items := make([]Item, len(in.Items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, req := range in.Items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			item := Item{Index: i, BearingID: req.BearingID}
			res, err := eval(gctx, req)
			if err != nil {
				if e := gctx.Err(); e != nil {
					return e
				}
				item.Error = err.Error()
			} else {
				item.Result = &res
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	out := Result{Count: len(items), Items: items}
	for _, it := range items {
		switch {
		case it.Error != "":
			out.Failed++
		case it.Result.OK:
			out.Passed++
		}
	}
	return out, nil
}
