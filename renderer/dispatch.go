// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package renderer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"honnef.co/go/renderqueue/gfx"
	"honnef.co/go/renderqueue/mem"
)

var errNoModel = errors.New("no model bound")
var errNoUniformBuffer = errors.New("no uniform buffer bound")
var errNotBindless = errors.New("texture doesn't support bindless access")

// Dispatch replays the recorded commands against dev, in recording order. It
// must be called on the goroutine that owns dev's context. Dispatch stops at
// the first command that fails; only CheckError, CheckFrameBuffer, custom
// commands and unresolvable handles cause failures.
//
// Setup commands run first, followed by the upload of staged uniforms.
// Debug groups that are still open at the end are popped.
//
// The queue is left intact and can be dispatched again.
func (q *Queue) Dispatch(dev gfx.Device) error {
	if q.dispatching {
		if debugChecks {
			panic(fmt.Sprintf("renderer: queue %q is already being dispatched", q.name))
		}
		return fmt.Errorf("renderer: queue %q is already being dispatched", q.name)
	}
	q.dispatching = true
	defer func() { q.dispatching = false }()

	arena := mem.NewArena()
	t := &dispatchTable{
		resolver: gfx.NewResolver(dev, arena),
		dev:      dev,
	}

	i := 0
	for n := q.setupHead.next; n != nil; n = n.next {
		if err := q.replay(t, n.cmd); err != nil {
			return fmt.Errorf("renderer: queue %q: setup command %d (%s): %w", q.name, i, commandName(n.cmd), err)
		}
		i++
	}

	uub, transient, err := q.uploadUUB(t.resolver)
	if err != nil {
		return fmt.Errorf("renderer: queue %q: uploading uniforms: %w", q.name, err)
	}
	if transient {
		defer uub.Release()
	}
	t.uub = uub

	i = 0
	for n := q.head.next; n != nil; n = n.next {
		if err := q.replay(t, n.cmd); err != nil {
			q.closeGroups(t)
			return fmt.Errorf("renderer: queue %q: command %d (%s): %w", q.name, i, commandName(n.cmd), err)
		}
		i++
	}

	q.closeGroups(t)
	if l := q.logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("dispatched queue",
			"queue", q.name,
			"commands", i,
			"resources", t.resolver.Resolved(),
			"uniform bytes", len(q.uub))
	}
	return nil
}

// closeGroups pops the debug groups the dispatch left open.
func (q *Queue) closeGroups(t *dispatchTable) {
	if t.groups <= 0 {
		return
	}
	q.logger().Warn("debug groups left open", "queue", q.name, "groups", t.groups)
	for range t.groups {
		t.dev.PopDebugGroup()
	}
	t.groups = 0
}

// uploadUUB uploads the staged uniforms. transient reports whether the
// returned buffer has to be released after the dispatch.
func (q *Queue) uploadUUB(r *gfx.Resolver) (ub gfx.UniformBuffer, transient bool, err error) {
	if len(q.uub) == 0 {
		return nil, false, nil
	}
	if q.opts.Profiler != nil {
		defer q.opts.Profiler.Start("UUB upload").End()
	}

	if q.opts.Provisional != nil {
		if !q.uubHandle.Valid() {
			q.uubHandle = q.opts.Provisional.UniformBuffer("UUB_" + q.name)
		}
		ub, err = gfx.Resolve(r, q.uubHandle)
		if err != nil {
			return nil, false, err
		}
		ub.Bind()
		if int(ub.Size()) >= len(q.uub) {
			ub.WriteRange(q.uub, 0)
		} else {
			ub.WriteWhole(q.uub, gfx.UsageStream)
		}
		q.logger().Debug("uploaded uniforms", "queue", q.name, "bytes", len(q.uub), "reused", true)
		return ub, false, nil
	}

	ub, err = r.Device().NewUniformBuffer("UUB")
	if err != nil {
		return nil, false, err
	}
	ub.Bind()
	ub.WriteWhole(q.uub, gfx.UsageStream)
	q.logger().Debug("uploaded uniforms", "queue", q.name, "bytes", len(q.uub), "reused", false)
	return ub, true, nil
}

func (q *Queue) replay(t *dispatchTable, cmd command) error {
	r := t.resolver
	dev := t.dev
	switch cmd := cmd.(type) {
	case *bindShader:
		shader, err := gfx.Resolve(r, cmd.Shader)
		if err != nil {
			return err
		}
		shader.Bind()

	case *bindModel:
		model, err := gfx.Resolve(r, cmd.Model)
		if err != nil {
			return err
		}
		if debugChecks && model.PrimitiveCount() != cmd.Primitives {
			panic(fmt.Sprintf("renderer: model has %d primitives, but was bound with %d",
				model.PrimitiveCount(), cmd.Primitives))
		}
		model.Bind()
		t.model = model

	case *bindTexture:
		tex, err := gfx.Resolve(r, cmd.Texture)
		if err != nil {
			return err
		}
		tex.Bind(cmd.Unit)

	case *activeTexture:
		dev.ActiveTexture(cmd.Unit)

	case *bindFrameBuffer:
		fb, err := gfx.Resolve(r, cmd.FrameBuffer)
		if err != nil {
			return err
		}
		fb.Bind()

	case *resetFrameBuffer:
		dev.BindDefaultFrameBuffer()

	case *bindUniformBuffer:
		ub, err := gfx.Resolve(r, cmd.Buffer)
		if err != nil {
			return err
		}
		switch cmd.Kind {
		case bindForWrite:
			ub.Bind()
		case bindBase:
			ub.BindBase(cmd.Point)
		case bindRange:
			ub.BindRange(cmd.Point, cmd.Offset, cmd.Size)
		}
		t.uniform = ub

	case *writeWhole:
		if t.uniform == nil {
			return errNoUniformBuffer
		}
		t.uniform.WriteWhole(cmd.Data, cmd.Usage)

	case *writeRange:
		if t.uniform == nil {
			return errNoUniformBuffer
		}
		t.uniform.WriteRange(cmd.Data, cmd.Offset)

	case *bindUUB:
		if t.uub == nil {
			return errors.New("no uniforms have been staged")
		}
		t.uub.BindRange(cmd.Point, cmd.Range.Offset, cmd.Range.Size)

	case *setUniform:
		shader, err := gfx.Resolve(r, cmd.Shader)
		if err != nil {
			return err
		}
		shader.SetUniform(cmd.Location, cmd.Kind, cmd.Count, cmd.Data)

	case *attachDepth:
		fb, tex, err := resolveAttachment(r, cmd.FrameBuffer, cmd.Texture)
		if err != nil {
			return err
		}
		fb.DepthTexture(tex)

	case *attachColor:
		fb, tex, err := resolveAttachment(r, cmd.FrameBuffer, cmd.Texture)
		if err != nil {
			return err
		}
		fb.ColorTexture(cmd.Index, tex, cmd.MipLevel)

	case *activeAttachments:
		fb, err := gfx.Resolve(r, cmd.FrameBuffer)
		if err != nil {
			return err
		}
		fb.ActiveAttachments(cmd.Mask)

	case *clearFrameBuffer:
		fb, err := gfx.Resolve(r, cmd.FrameBuffer)
		if err != nil {
			return err
		}
		fb.Clear()

	case *checkFrameBuffer:
		fb, err := gfx.Resolve(r, cmd.FrameBuffer)
		if err != nil {
			return err
		}
		if err := fb.CheckStatus(); err != nil {
			return err
		}

	case *image2D:
		tex, err := gfx.Resolve(r, cmd.Texture)
		if err != nil {
			return err
		}
		tex.Initialize2D(cmd.Size, cmd.Mips, cmd.Format)

	case *image3D:
		tex, err := gfx.Resolve(r, cmd.Texture)
		if err != nil {
			return err
		}
		tex.Initialize3D(cmd.Size, cmd.Mips, cmd.Format)

	case *textureFilters:
		tex, err := gfx.Resolve(r, cmd.Texture)
		if err != nil {
			return err
		}
		tex.Filters(cmd.Min, cmd.Mag, cmd.Anisotropy)

	case *textureWraps:
		tex, err := gfx.Resolve(r, cmd.Texture)
		if err != nil {
			return err
		}
		tex.Wraps(cmd.S, cmd.T, cmd.R)

	case *generateMipmaps:
		tex, err := gfx.Resolve(r, cmd.Texture)
		if err != nil {
			return err
		}
		tex.GenerateMipmaps()

	case *bindImage:
		tex, err := gfx.Resolve(r, cmd.Texture)
		if err != nil {
			return err
		}
		tex.BindImage(cmd.Unit, cmd.Read, cmd.Write)

	case *resetAllTextures:
		dev.UnbindTextures(gfx.MaxTextureUnits)

	case *viewport:
		dev.Viewport(cmd.Origin[0], cmd.Origin[1], cmd.Size[0], cmd.Size[1])

	case *scissor:
		dev.Scissor(cmd.Origin[0], cmd.Origin[1], cmd.Size[0], cmd.Size[1])

	case *toggle:
		dev.SetEnabled(cmd.Cap, cmd.Enable)

	case *cullFace:
		dev.CullFace(cmd.Face)

	case *depthFunc:
		dev.DepthFunc(cmd.Func)

	case *depthWrite:
		dev.DepthMask(cmd.Enable)

	case *colorWrite:
		dev.ColorMask(cmd.Enable)

	case *blendFunc:
		dev.BlendFunc(cmd.Src, cmd.Dst)

	case *clearColor:
		dev.ClearColor(cmd.RGBA)

	case *clearBuffers:
		dev.Clear(cmd.Mask)

	case *draw:
		if t.model == nil {
			return errNoModel
		}
		t.model.Draw(cmd.Instances)

	case *compute:
		shader, err := gfx.Resolve(r, cmd.Shader)
		if err != nil {
			return err
		}
		shader.Compute(cmd.Groups)

	case *memoryBarrier:
		dev.MemoryBarrier(cmd.Bits)

	case *pushScope:
		dev.PushDebugGroup(cmd.Name)
		t.groups++

	case *popScope:
		dev.PopDebugGroup()
		t.groups--

	case *enqueue:
		err := cmd.Queue.Dispatch(dev)
		t.clearBindings()
		if err != nil {
			return err
		}

	case *custom:
		err := cmd.Fn(r, cmd.Data)
		if !cmd.PreservesState {
			t.clearBindings()
		}
		if err != nil {
			return err
		}

	case *setupUniform:
		rng := cmd.Range
		if err := cmd.Fn(r, q.uub[rng.Offset:rng.Offset+rng.Size:rng.Offset+rng.Size]); err != nil {
			return err
		}

	case *bindlessSetup:
		if err := q.writeBindless(r, cmd); err != nil {
			return err
		}

	case *bindlessResident:
		for _, h := range cmd.Textures {
			if !h.Valid() {
				continue
			}
			tex, err := resolveBindless(r, h)
			if err != nil {
				return err
			}
			tex.MakeResident(cmd.Resident)
		}

	case *checkError:
		if err := dev.Error(); err != nil {
			if !cmd.LogOnly {
				return err
			}
			q.logger().Error("graphics error", "queue", q.name, "err", err)
		}

	default:
		panic(fmt.Sprintf("unhandled command %T", cmd))
	}
	return nil
}

func resolveAttachment(r *gfx.Resolver, fbh gfx.Handle[gfx.FrameBuffer], texh gfx.Handle[gfx.Texture]) (gfx.FrameBuffer, gfx.Texture, error) {
	fb, err := gfx.Resolve(r, fbh)
	if err != nil {
		return nil, nil, err
	}
	tex, err := gfx.Resolve(r, texh)
	if err != nil {
		return nil, nil, err
	}
	return fb, tex, nil
}
