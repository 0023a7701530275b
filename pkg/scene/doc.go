// Package scene loads declarative layout scenes and turns them into widget
// containers for the direct engine.
//
// # Formats
//
// Scenes are written in TOML, YAML or JSON; [ReadFile] picks the decoder from the
// file extension. Unknown keys are rejected so typos surface as errors instead
// of silently ignored constraints.
//
// A TOML scene:
//
//	name = "toolbar"
//
//	[container]
//	width = 600
//	height = 80
//
//	[[box]]
//	id = "back"
//	width = 48
//	height = 48
//	anchors.left = { to = "parent.left", margin = 8 }
//	anchors.top = { to = "parent.top" }
//	anchors.bottom = { to = "parent.bottom" }
//
//	[[box]]
//	id = "title"
//	height = 48
//	horizontal = { behavior = "match_constraint" }
//	anchors.left = { to = "back.right", margin = 8 }
//	anchors.right = { to = "parent.right", margin = 8 }
//
// # Chains
//
// A [[chain]] entry links boxes in order and binds the ends to the container, the
// same as writing the bidirectional anchors by hand:
//
//	[[chain]]
//	axis = "horizontal"
//	style = "packed"
//	boxes = ["ok", "cancel"]
//
// # Measuring
//
// [Scene.Build] returns a [widget.StaticMeasurer] built from each box's content
// table; boxes without content measure to their declared size.
package scene
