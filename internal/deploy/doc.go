// Package deploy copies export packages onto removable media.
//
// X32 and M32 desks only read FAT32-formatted USB sticks, so the
// deployer can verify the target filesystem before writing. A netlink
// watcher notices freshly inserted USB block devices so the CLI can wait
// for a stick instead of requiring the user to name a mount point.
package deploy
