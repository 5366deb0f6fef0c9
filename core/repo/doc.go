// Package repo maintains the local checkout of the device-type library with go-git.
//
// Sync clones Config.URL into Config.Path on first use. On later runs it opens the
// existing checkout, refuses origins whose URL does not end in ".git"
// (ErrInvalidOrigin), fetches, checks out Config.Branch and resets it to the fetched origin head.
// No git binary is required.
package repo
