// Package project defines the project record and the edits that apply to it.
//
// # Overview
//
// A [Project] holds everything catalogued about one piece of work: dates,
// status, tech stack, links, images and free-text notes. Which optional
// sections of a project are shown is decided by the section package from
// these fields and [Project.EnabledSections].
//
// # Editing
//
// List fields are addressed by [Field] and edited by index:
//
//	p.AppendItem(project.FieldTags, "swift")
//	p.UpdateItem(project.FieldTags, 0, "SwiftUI")  // false if out of range
//	p.RemoveItem(project.FieldTags, 5)             // no-op, returns false
//
// Blank list entries are allowed while editing and removed by
// [Project.PruneBlankItems] when editing ends. Link fields are written
// through [Project.SetLink], which turns blank input into an absent link.
//
// Partial updates from the API and the CLI go through [Patch].
package project
