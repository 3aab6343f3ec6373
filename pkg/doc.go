// Package pkg provides the core libraries for MileStone, a personal project
// catalogue.
//
// # Overview
//
// MileStone records the projects you have built: what they are, when they ran,
// which stack they used and where they live. The pkg directory is organized
// into four areas:
//
//  1. Domain - [project], [section], [catalog], [timeline] and [editor]
//  2. Rendering - [render], [render/nodelink] and [flow]
//  3. Infrastructure - [store], [cache], [config], [observability], [ticket]
//  4. Entry points - [pipeline] and [api], shared by the CLI and the server
//
// # Architecture
//
// The typical data flow through MileStone:
//
//	CLI flags / JSON request
//	         ↓
//	    [project] Patch (validated partial update)
//	         ↓
//	    [store] (file or MongoDB)
//	         ↓
//	    [pipeline] (content-hashed render through [cache])
//	         ↓
//	    SVG card / chips / timeline / graph
//
// # Quick Start
//
//	s, _ := store.Open(ctx, config.Default())
//	p := project.New("Portfolio", "My site", time.Now())
//	p.AppendItem(project.FieldTechStack, "Go")
//	_ = s.Put(ctx, p)
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	svg, _, _ := runner.Render(ctx, pipeline.Request{Kind: pipeline.KindCard, Project: p})
//
// # Main Packages
//
// [project] - The Project record, status and type enums, list fields,
// links, partial updates and duration text.
//
// [section] - Which optional sections a project shows. A section is active
// when it holds content or was added explicitly.
//
// [catalog] - Filtering, sorting and counting for the project list.
//
// [timeline] - Projects grouped by start year in chronological order.
//
// [editor] - An edit session over one project. Leaving edit mode drops blank
// list entries; stale image loads are discarded through [ticket].
//
// [render] - SVG cards, chips and timelines laid out with [flow].
//
// [store] - Project persistence: file, MongoDB and in-memory backends.
//
// [cache] - Rendered artifact cache: file, Redis and null backends.
//
// [api] - The chi HTTP API used by "milestone serve".
//
// # Testing
//
//	go test ./pkg/...
//
// [project]: https://pkg.go.dev/github.com/milestone-dev/milestone/pkg/project
// [section]: https://pkg.go.dev/github.com/milestone-dev/milestone/pkg/section
// [catalog]: https://pkg.go.dev/github.com/milestone-dev/milestone/pkg/catalog
// [timeline]: https://pkg.go.dev/github.com/milestone-dev/milestone/pkg/timeline
// [editor]: https://pkg.go.dev/github.com/milestone-dev/milestone/pkg/editor
// [render]: https://pkg.go.dev/github.com/milestone-dev/milestone/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/milestone-dev/milestone/pkg/render/nodelink
// [flow]: https://pkg.go.dev/github.com/milestone-dev/milestone/pkg/flow
// [store]: https://pkg.go.dev/github.com/milestone-dev/milestone/pkg/store
// [cache]: https://pkg.go.dev/github.com/milestone-dev/milestone/pkg/cache
// [config]: https://pkg.go.dev/github.com/milestone-dev/milestone/pkg/config
// [observability]: https://pkg.go.dev/github.com/milestone-dev/milestone/pkg/observability
// [ticket]: https://pkg.go.dev/github.com/milestone-dev/milestone/pkg/ticket
// [pipeline]: https://pkg.go.dev/github.com/milestone-dev/milestone/pkg/pipeline
// [api]: https://pkg.go.dev/github.com/milestone-dev/milestone/pkg/api
package pkg
