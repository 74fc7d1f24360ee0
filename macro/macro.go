package macro

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/pixel2d/editor"
	"github.com/sirupsen/logrus"
)

// Runner executes tengo macros against an editor engine. Scripts see a
// single global, editor, exposing the engine's command surface.
type Runner struct {
	engine *editor.Engine
	log    *logrus.Entry
}

func NewRunner(engine *editor.Engine, log *logrus.Entry) *Runner {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Runner{engine: engine, log: log.WithField("component", "macro")}
}

// RunFile runs the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("macro: load %s: %w", path, err)
	}
	if err := r.Run(ctx, src); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Run compiles and runs src. It stops when ctx is done.
func (r *Runner) Run(ctx context.Context, src []byte) error {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("editor", r.editorObject()); err != nil {
		return fmt.Errorf("macro: %w", err)
	}

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("macro: compile: %w", err)
	}
	if err := compiled.RunContext(ctx); err != nil {
		return fmt.Errorf("macro: run: %w", err)
	}
	return nil
}

func (r *Runner) editorObject() *tengo.ImmutableMap {
	e := r.engine
	values := map[string]tengo.Object{}

	values["initialize"] = &tengo.UserFunction{Name: "initialize", Value: func(args ...tengo.Object) (tengo.Object, error) {
		w, h, err := pointArgs("initialize", args)
		if err != nil {
			return nil, err
		}
		if err := e.Initialize(w, h); err != nil {
			return nil, err
		}
		return tengo.TrueValue, nil
	}}

	values["select_tile"] = &tengo.UserFunction{Name: "select_tile", Value: func(args ...tengo.Object) (tengo.Object, error) {
		name, id, err := selectionArgs("select_tile", args)
		if err != nil {
			return nil, err
		}
		if err := e.SelectTile(name, id); err != nil {
			return nil, err
		}
		return tengo.TrueValue, nil
	}}

	values["select_sprite"] = &tengo.UserFunction{Name: "select_sprite", Value: func(args ...tengo.Object) (tengo.Object, error) {
		name, id, err := selectionArgs("select_sprite", args)
		if err != nil {
			return nil, err
		}
		if err := e.SelectSprite(name, id); err != nil {
			return nil, err
		}
		return tengo.TrueValue, nil
	}}

	values["set_mode"] = &tengo.UserFunction{Name: "set_mode", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		mode, err := editor.ParseBrushMode(objectAsString(args[0]))
		if err != nil {
			return nil, err
		}
		e.SetMode(mode)
		return tengo.TrueValue, nil
	}}

	values["mode"] = &tengo.UserFunction{Name: "mode", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: e.Mode().String()}, nil
	}}

	// draw returns false when the placement was rejected.
	values["draw"] = &tengo.UserFunction{Name: "draw", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y, err := pointArgs("draw", args)
		if err != nil {
			return nil, err
		}
		err = e.DrawAt(image.Pt(x, y))
		switch {
		case err == nil:
			return tengo.TrueValue, nil
		case errors.Is(err, editor.ErrSpriteCollision), errors.Is(err, editor.ErrFillNeedsTile):
			return tengo.FalseValue, nil
		default:
			return nil, err
		}
	}}

	values["tile_at"] = &tengo.UserFunction{Name: "tile_at", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y, err := pointArgs("tile_at", args)
		if err != nil {
			return nil, err
		}
		if e.Grid() == nil {
			return tengo.UndefinedValue, nil
		}
		mt := e.Grid().Get(image.Pt(x, y))
		if mt == nil {
			return tengo.UndefinedValue, nil
		}
		return &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"tileset": &tengo.String{Value: mt.Tileset.Name},
			"id":      &tengo.Int{Value: int64(mt.Tile.ID)},
			"name":    &tengo.String{Value: mt.Tile.Name},
		}}, nil
	}}

	values["sprites_at"] = &tengo.UserFunction{Name: "sprites_at", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y, err := pointArgs("sprites_at", args)
		if err != nil {
			return nil, err
		}
		out := &tengo.Array{}
		if e.Sprites() == nil {
			return out, nil
		}
		for _, s := range e.Sprites().Stack(image.Pt(x, y)) {
			out.Value = append(out.Value, &tengo.String{Value: s.Entity.Name})
		}
		return out, nil
	}}

	values["sprite_count"] = &tengo.UserFunction{Name: "sprite_count", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(e.Sprites().Len())}, nil
	}}

	values["tile_count"] = &tengo.UserFunction{Name: "tile_count", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if e.Grid() == nil {
			return &tengo.Int{Value: 0}, nil
		}
		return &tengo.Int{Value: int64(e.Grid().Len())}, nil
	}}

	values["size"] = &tengo.UserFunction{Name: "size", Value: func(args ...tengo.Object) (tengo.Object, error) {
		w, h := 0, 0
		if g := e.Grid(); g != nil {
			w, h = g.Width(), g.Height()
		}
		return &tengo.Array{Value: []tengo.Object{&tengo.Int{Value: int64(w)}, &tengo.Int{Value: int64(h)}}}, nil
	}}

	values["grid_lines"] = &tengo.UserFunction{Name: "grid_lines", Value: func(args ...tengo.Object) (tengo.Object, error) {
		shown, err := boolArg("grid_lines", args)
		if err != nil {
			return nil, err
		}
		e.SetGridLinesShown(shown)
		return tengo.TrueValue, nil
	}}

	values["bounding_boxes"] = &tengo.UserFunction{Name: "bounding_boxes", Value: func(args ...tengo.Object) (tengo.Object, error) {
		shown, err := boolArg("bounding_boxes", args)
		if err != nil {
			return nil, err
		}
		e.SetBoundingBoxesShown(shown)
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		r.log.Info(strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func pointArgs(name string, args []tengo.Object) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, tengo.ErrWrongNumArguments
	}
	x, ok := tengo.ToInt(args[0])
	if !ok {
		return 0, 0, tengo.ErrInvalidArgumentType{Name: name + ": first", Expected: "int", Found: args[0].TypeName()}
	}
	y, ok := tengo.ToInt(args[1])
	if !ok {
		return 0, 0, tengo.ErrInvalidArgumentType{Name: name + ": second", Expected: "int", Found: args[1].TypeName()}
	}
	return x, y, nil
}

func selectionArgs(name string, args []tengo.Object) (string, int, error) {
	if len(args) != 2 {
		return "", 0, tengo.ErrWrongNumArguments
	}
	if _, ok := args[0].(*tengo.String); !ok {
		return "", 0, tengo.ErrInvalidArgumentType{Name: name + ": tileset", Expected: "string", Found: args[0].TypeName()}
	}
	id, ok := tengo.ToInt(args[1])
	if !ok {
		return "", 0, tengo.ErrInvalidArgumentType{Name: name + ": id", Expected: "int", Found: args[1].TypeName()}
	}
	return objectAsString(args[0]), id, nil
}

func boolArg(name string, args []tengo.Object) (bool, error) {
	if len(args) != 1 {
		return false, tengo.ErrWrongNumArguments
	}
	v, ok := tengo.ToBool(args[0])
	if !ok {
		return false, tengo.ErrInvalidArgumentType{Name: name, Expected: "bool", Found: args[0].TypeName()}
	}
	return v, nil
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
