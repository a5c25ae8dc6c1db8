// Package disclosure manages popup open/closed state and dismissal by a
// pointer press outside the popup.
//
// Several popups can share one [Document]. Each [Controller] registers a
// listener only while its popup is open, and that listener only tests the
// controller's own region, so sibling popups never close each other by
// accident.
package disclosure
