package reminders

import (
	"context"
	"errors"
	"sort"
)

type fakeNotifier struct {
	authorized bool
	authErr    error
	addErr     error

	pending   map[string]Request
	delivered map[string]Request
	calls     []string
}

func newFakeNotifier(authorized bool) *fakeNotifier {
	return &fakeNotifier{
		authorized: authorized,
		pending:    map[string]Request{},
		delivered:  map[string]Request{},
	}
}

func (f *fakeNotifier) Authorized(ctx context.Context) (bool, error) {
	f.calls = append(f.calls, "authorized")
	return f.authorized, f.authErr
}

func (f *fakeNotifier) Add(ctx context.Context, r Request) error {
	f.calls = append(f.calls, "add:"+r.ID)
	if f.addErr != nil {
		return f.addErr
	}
	f.pending[r.ID] = r
	return nil
}

func (f *fakeNotifier) RemovePending(ctx context.Context, ids []string) error {
	f.calls = append(f.calls, "remove_pending")
	for _, id := range ids {
		delete(f.pending, id)
	}
	return nil
}

func (f *fakeNotifier) RemoveDelivered(ctx context.Context, ids []string) error {
	f.calls = append(f.calls, "remove_delivered")
	for _, id := range ids {
		delete(f.delivered, id)
	}
	return nil
}

func (f *fakeNotifier) pendingIDs() []string {
	out := make([]string, 0, len(f.pending))
	for id := range f.pending {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

var errBoom = errors.New("boom")
