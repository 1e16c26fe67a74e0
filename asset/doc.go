/*
	Package asset finds the versioned assets in a Unity source tree.

	An asset is any file or directory X with a sidecar file "X.meta" next to it;
	the sidecar holds the asset's GUID.  Everything without a sidecar is
	invisible to this package (directories without one are still descended,
	since they may hold assets).
*/
package asset
