package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-social-dashboard/components/dashboard"
)

// ViewStateInput requests the current render state.
type ViewStateInput struct{}

type viewStateSource interface {
	ViewState(ctx context.Context) (dashboard.ViewState, error)
}

// ViewStateQuery returns the state the view layer renders from.
type ViewStateQuery struct {
	source viewStateSource
}

// NewViewStateQuery builds the query.
func NewViewStateQuery(source viewStateSource) *ViewStateQuery {
	return &ViewStateQuery{source: source}
}

var _ gocommand.Querier[ViewStateInput, dashboard.ViewState] = (*ViewStateQuery)(nil)

// Query resolves the view state.
func (q *ViewStateQuery) Query(ctx context.Context, _ ViewStateInput) (dashboard.ViewState, error) {
	return q.source.ViewState(ctx)
}
