// Package ui is the imagefy terminal front end, built on Bubble Tea.
//
// Core abstractions:
//   - View: A page or overlay with its own model, update, view (Elm-style)
//   - Router: Maps paths to page factories; navigating unmounts the old page
//   - NavShell: The top bar; a full row on wide terminals, a menu panel on narrow ones
//   - FocusManager: Tracks whether keys go to the nav or the page
//   - Overlay: Modal or popup views (login, mobile menu) with dismiss key
//   - Toasts: Transient notifications raised by the submission workflow
package ui
