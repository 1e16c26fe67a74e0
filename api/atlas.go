package api

import (
	"github.com/polydawn/refmt/obj/atlas"
)

var Atlas = atlas.MustBuild(
	atlas.BuildEntry(Event{}).StructMap().Autogenerate().Complete(),
	atlas.BuildEntry(Event_Log{}).StructMap().Autogenerate().Complete(),
	atlas.BuildEntry(Event_Result{}).StructMap().Autogenerate().Complete(),
	atlas.BuildEntry(PackResult{}).StructMap().Autogenerate().Complete(),
	atlas.BuildEntry(Error{}).StructMap().Autogenerate().Complete(),
)
