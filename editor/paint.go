package editor

import (
	"fmt"
	"image"

	"github.com/sirupsen/logrus"
)

// drawAt dispatches on the brush mode. The brush must be valid.
func (e *Engine) drawAt(pos image.Point) error {
	switch e.brush.Mode() {
	case ModePencil:
		if e.brush.IsTile() {
			e.placeTile(pos)
			return nil
		}
		return e.placeSprite(pos)

	case ModeFill:
		if !e.brush.IsTile() {
			return e.reject(NoticeFillWithSprite, pos, ErrFillNeedsTile)
		}
		e.fillTiles(pos)

	case ModeEraser:
		// placed sprites are removed from the context menu, not the eraser
		if e.brush.IsTile() && e.grid.Remove(pos) {
			e.gesture.record(pos)
		}
	}
	return nil
}

// placeTile paints the brush tile at pos unless pos is off the map or was
// the last cell painted in the current gesture.
func (e *Engine) placeTile(pos image.Point) bool {
	if e.gesture.drawn(pos) || !e.grid.InBounds(pos) {
		return false
	}
	e.grid.Set(pos, e.brush.Tileset(), e.brush.Tile())
	e.gesture.record(pos)
	return true
}

// placeSprite adds the brush sprite with its origin at pos and restores
// painter's order. Colliding placements change nothing.
func (e *Engine) placeSprite(pos image.Point) error {
	if !e.sprites.inBounds(pos) {
		return nil
	}
	ent := e.brush.Sprite()
	if e.sprites.Collides(pos, ent) {
		return e.reject(NoticeSpriteCollision, pos, ErrSpriteCollision)
	}

	origin := pos.Mul(e.opts.TileSize)
	s := &MapSprite{
		Tileset: e.brush.Tileset(),
		Entity:  ent,
		Cell:    pos,
		Pos:     origin,
		handle:  e.spriteLayer.Add(e.brush.Paint(origin)),
	}
	e.sprites.Push(pos, s)
	e.spriteLayer.SortStable(spriteBefore)
	e.gesture.record(pos)
	return nil
}

// spriteBefore orders sprites back to front: lower baselines first, and on
// equal baselines the taller sprite first.
func spriteBefore(a, b Visual) bool {
	ka := a.Pos.Y + a.Entity.EffectiveHeight()
	kb := b.Pos.Y + b.Entity.EffectiveHeight()
	if ka != kb {
		return ka < kb
	}
	return a.Entity.H > b.Entity.H
}

// fillTiles paints the 4-connected region around pos that matches the
// original content of pos, restricted to the visible cells.
func (e *Engine) fillTiles(pos image.Point) {
	if !e.grid.InBounds(pos) {
		return
	}
	original := e.grid.Get(pos)
	e.placeTile(pos)

	bounds := e.viewport.ViewableArea()
	visited := map[image.Point]struct{}{pos: {}}
	stack := []image.Point{pos}
	painted := 1

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, n := range [4]image.Point{
			image.Pt(p.X, p.Y-1),
			image.Pt(p.X-1, p.Y),
			image.Pt(p.X+1, p.Y),
			image.Pt(p.X, p.Y+1),
		} {
			if _, seen := visited[n]; seen || !n.In(bounds) {
				continue
			}
			visited[n] = struct{}{}
			if !e.grid.sameAs(n, original) {
				continue
			}
			e.grid.Set(n, e.brush.Tileset(), e.brush.Tile())
			stack = append(stack, n)
			painted++
		}
	}

	e.log.WithFields(logrus.Fields{"cell": pos, "cells": painted}).Debug("fill")
}

// reject publishes a notice for an operation that left the map untouched.
func (e *Engine) reject(kind NoticeKind, cell image.Point, err error) error {
	n := Notice{Kind: kind, Cell: cell, Message: err.Error()}
	e.log.WithFields(logrus.Fields{"cell": cell, "reason": kind.String()}).Info("placement rejected")
	e.events.PlacementRejected.Publish(n)
	return fmt.Errorf("%w at %v", err, cell)
}
