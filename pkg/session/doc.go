// Package session owns live sketches.
//
// A [Session] wraps one [grid.Grid] behind a mutex and records an edit
// history. Every method holds the lock for its whole duration, so a session
// may be shared between HTTP handlers, the terminal editor and renderers.
// Code that needs several grid calls under one lock uses [Session.Do].
//
// A [Registry] is an in-memory index of sessions keyed by UUID. Nothing is
// persisted; sketch files are written explicitly with [WriteFile] in either
// the JSON text form or the compact binary form of package codec.
//
// # Usage
//
//	s, err := session.New(64, 8)
//	if err != nil {
//	    return err
//	}
//	edit, err := s.Toggle(0, 0, 1, 1)
//	scene := s.Scene(render.ModeSubgrid)
//
// [grid.Grid]: github.com/matzehuels/sketchgrid/pkg/grid.Grid
package session
