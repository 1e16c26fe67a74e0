/*
	The tarball package packs a staging area into the gzip'd tar stream
	that Unity calls a .unitypackage.

	Each child of the staging area becomes a top-level directory member,
	followed by its contents in name order.
*/
package tarball

// Gzip level used when nobody asks for anything else.
// Unity's own exporter and Python's tarfile both default to best compression.
const DefaultLevel = 9
