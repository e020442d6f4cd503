// Package listing drives the operations list: one retrieval per activation,
// a search term, and the projection the UI renders.
//
// # Lifecycle
//
//	Idle ──Activate──> Loading ──ok──> Ready
//	                      │
//	                      └──err──> Failed
//
//	any phase ──Dispose / Subscription.Cancel──> Disposed
//
// Activate may be called again from any phase except Disposed. The previous
// retrieval is cancelled, its subscription closed, and a late result from it
// is dropped by comparing generations.
//
// # Subscription
//
// Each activation returns a Subscription. Its channel holds at most one
// pending ViewState: a new state replaces an unread one, so a slow reader
// always sees the latest projection. The channel is closed when the
// activation is superseded or the controller is disposed.
//
// # Projection
//
// In the Ready phase the rows are the retrieved operations, in backend order,
// whose description contains the search term (case-insensitive), each paired
// with its status display. An empty term keeps every operation. Setting the
// term before data arrives stores it for the next Ready state.
//
// # Usage Example
//
//	ctrl := listing.New(client, mapper)
//	sub, err := ctrl.Activate(ctx)
//	if err != nil {
//		return err
//	}
//	defer ctrl.Dispose()
//	for state := range sub.States() {
//		render(state)
//	}
package listing
