// Package interactive drives the console session: authentication, repository
// resolution and the file menu.
//
// Runner is a small state machine. It moves from authenticating to resolving a
// repository and then stays in the menu until the user exits, input ends or a
// repository cannot be created. Service failures inside the menu are reported and
// the menu is shown again.
package interactive
