// Package ui implements Larder's terminal interface.
//
// The UI is a thin bubbletea shell over the stores: it renders snapshots,
// translates key presses into store operations, and forwards terminal focus
// events to the lifecycle observer. It holds no state of its own beyond the
// cursor and the most recent snapshots, which it re-reads on a one second
// tick rather than subscribing to store changes.
//
// Focus reporting is enabled on the program, so tea.FocusMsg and tea.BlurMsg
// arrive whenever the terminal gains or loses focus. Regaining focus is the
// client-side equivalent of a mobile app returning to the foreground and is
// what triggers the streak resync.
package ui
