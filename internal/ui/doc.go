// Package ui implements the download progress view using bubbletea's Elm architecture.
//
// The view moves through three states:
//  1. [ResolvingView] : waiting for the catalog to resolve
//  2. [DownloadView] : one row per track with its current stage, a spinner and an overall progress bar
//  3. [ResultView] : browsable list of job results with a success/failure count
//
// [Model] implements Init/Update/View and receives messages via the [Msg] union type.
// Progress updates flow through a channel from the tasks engine; the run itself happens in a goroutine
// started by Init and its outcome is delivered as a message once the channel closes.
//
// Keyboard navigation uses vim-style bindings (j/k, f, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
