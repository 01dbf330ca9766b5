// Package navigation keeps the mounted view in step with the location.
//
// A Controller owns a MountPoint and renders into it whatever the Dispatcher
// returns for the current location. PopState is the only render trigger:
// link clicks, Navigate and Redirect all update History first and then
// synthesize a PopState, exactly like a browser back button would.
//
// Every PopState is tagged with a sequence number. Renders run concurrently,
// and a render that finishes after a newer one has started is discarded: its
// view is disconnected without ever being mounted. Before a new view is
// mounted the previous one is disconnected, once, and the mount point is
// cleared.
//
// HandleClick implements the usual single-page link interception rules:
// clicks with modifier keys, non-primary buttons, anchors with a target other
// than _self and cross-origin links are left to the host.
package navigation
