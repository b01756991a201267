// Package artistloader is an immediate-mode canvas widget layer for
// [Ebitengine] that implements the "Power Artist Loader" graph node: a
// growable list of artist rows, each with an enable switch, an artist picked
// from a shared catalog and a strength value.
//
// Everything is drawn and hit-tested by hand each frame. A row records
// where it drew its parts and interprets pointer events against that
// layout; pressing the strength value starts a [Gesture] that becomes a
// drag (continuous adjustment) or a tap (numeric prompt).
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	catalog := artistloader.NewCatalog(artistloader.CSVFile{Path: "artists.csv"})
//	catalog.Refresh()
//	scene := artistloader.NewScene(catalog)
//	scene.AddNode(40, 60).List().AddArtist(nil)
//	artistloader.Run(scene, artistloader.RunConfig{Title: "Artists", ShowFPS: true})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly:
//
//	type Game struct{ scene *artistloader.Scene }
//
//	func (g *Game) Update() error         { g.scene.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image)  { g.scene.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Lists and values
//
// Each [Node] owns an [ArtistList]. The list keeps its drawn rows (header,
// artists, divider, add button) and its artist values in the same order
// through add, remove and move. [Serialize] and [Deserialize] convert a list
// to and from the []ArtistValue the host stores; [ComposePrompt] turns the
// enabled values into prompt text.
//
// # Collaborators
//
// The catalog ([Catalog]) is shared by every node and is the only type safe
// for concurrent use. Menus ([ContextMenu]), the numeric prompt
// ([NumberPrompt]) and the hover preview ([Preview]) are screen-space
// overlays owned by the [Scene]. Changes are reported through
// [Scene.OnChange] and, optionally, an [EntityStore] such as the Donburi
// adapter in artistloader/ecs.
//
// # Automated testing
//
// Input can be injected with [Scene.InjectClick], [Scene.InjectDrag] and
// friends, or scripted with [LoadTestScript]. Injected input runs on the
// scene's frame clock, so tap timing is deterministic.
//
// [Ebitengine]: https://ebitengine.org
package artistloader
