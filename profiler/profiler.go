// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package profiler measures nested spans of CPU time.
package profiler

import (
	"time"
)

type ProfilerGroup interface {
	Start(label string) ProfilerGroup
	End()
}

var _ ProfilerGroup = (*Group)(nil)

// Profiler collects trees of nested groups. A nil *Profiler is valid and
// profiles nothing. It is not safe for concurrent use.
type Profiler struct {
	// top-level groups that haven't been collected yet
	groups []*Group
	// free list of groups
	freeGroups []*Group
	// reused by Collect
	results []Result
	now     func() time.Time
}

func NewProfiler() *Profiler {
	return &Profiler{now: time.Now}
}

func NewNopProfiler() *Profiler {
	return nil
}

// Start begins a top-level group.
func (p *Profiler) Start(label string) *Group {
	if p == nil {
		return nil
	}
	g := p.getGroup()
	g.profiler = p
	g.Label = label
	g.start = p.now()
	p.groups = append(p.groups, g)
	return g
}

func (p *Profiler) getGroup() *Group {
	if len(p.freeGroups) > 0 {
		g := p.freeGroups[len(p.freeGroups)-1]
		p.freeGroups = p.freeGroups[:len(p.freeGroups)-1]
		clear(g.children)
		g.children = g.children[:0]
		g.end = time.Time{}
		g.parent = nil
		return g
	} else {
		return &Group{}
	}
}

type Group struct {
	Label    string
	start    time.Time
	end      time.Time
	children []*Group
	profiler *Profiler
	parent   *Group
}

func (g *Group) End() {
	if g == nil {
		return
	}
	if !g.end.IsZero() {
		panic("trying to end same group twice")
	}
	g.end = g.profiler.now()
}

// Start implements ProfilerGroup.
func (g *Group) Start(label string) ProfilerGroup {
	if g == nil {
		return (*Group)(nil)
	}
	return g.Nest(label)
}

// Nest begins a child group of g.
func (g *Group) Nest(label string) *Group {
	if g == nil {
		return nil
	}
	cg := g.profiler.getGroup()
	cg.profiler = g.profiler
	cg.Label = label
	cg.start = g.profiler.now()
	cg.parent = g
	g.children = append(g.children, cg)
	return cg
}

type Result struct {
	Label    string
	Start    time.Time
	End      time.Time
	Children []Result
}

func (r *Result) Duration() time.Duration { return r.End.Sub(r.Start) }

func populateResult(g *Group, res *Result) {
	// Don't use *res = Result{...} so that we reuse res.Children.
	res.Label = g.Label
	res.Start = g.start
	res.End = g.end
	if cap(res.Children) >= len(g.children) {
		res.Children = res.Children[:len(g.children)]
	} else {
		res.Children = make([]Result, len(g.children))
	}
	for ci, c := range g.children {
		populateResult(c, &res.Children[ci])
	}
}

// Collect returns the results of all finished top-level groups, in order of
// creation. It stops at the first group that hasn't ended yet. The return
// value is only valid until the next call to Collect.
func (p *Profiler) Collect() []Result {
	if p == nil {
		return nil
	}
	out := p.results[:0]

	var returnGroups func(gs ...*Group)
	returnGroups = func(gs ...*Group) {
		p.freeGroups = append(p.freeGroups, gs...)
		for _, g := range gs {
			returnGroups(g.children...)
		}
	}

	n := 0
	for _, g := range p.groups {
		if g.end.IsZero() {
			break
		}
		if cap(out) > len(out) {
			out = out[:len(out)+1]
		} else {
			out = append(out, Result{})
		}
		populateResult(g, &out[len(out)-1])
		n++
	}
	returnGroups(p.groups[:n]...)
	copy(p.groups, p.groups[n:])
	clear(p.groups[len(p.groups)-n:])
	p.groups = p.groups[:len(p.groups)-n]
	p.results = out[:0]
	return out
}
