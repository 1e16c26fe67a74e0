/*
	The unitypack command packs a Unity assets folder into a .unitypackage.

	With no arguments it packs "Assets/Deffatest" (relative to the directory
	holding the binary) into "Deffatest_v1.0.0.unitypackage" next to it.
	Every default can be overridden by a flag or a UNITYPACK_* environment
	variable; see --help.
*/
package main
