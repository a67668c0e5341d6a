// Command showcase is a terminal demo of the slate core: a grid of boxes
// wired to an event layer for pointer and focus dispatch and a visual
// layer for style transitions, with tap flashes played through the
// animator's dynamic style pool.
//
// Run it from this directory so the style sheet resolves:
//
//	go run . [-sheet styles.yaml]
//
// Click boxes, hover them, Tab to move focus, q or Escape to quit.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/go-slate/slate/pkg/events"
	"github.com/go-slate/slate/pkg/gestures"
	"github.com/go-slate/slate/pkg/graphics"
	"github.com/go-slate/slate/pkg/handle"
	"github.com/go-slate/slate/pkg/styles"
	"github.com/go-slate/slate/pkg/visual"
)

// Style sheet order, established by styles.yaml.
const (
	styleIdle = visual.StyleIndex(iota)
	styleHover
	stylePressed
	styleFocused
	styleFlash
	styleDisabled
)

const (
	flashDuration = 400 * time.Millisecond
	tickRate      = time.Second / 30
	dynamicSlots  = 4
)

// shell owns the node store both layers read from.
type shell struct {
	bounds  handle.Pool[handle.NodeFamily, graphics.Rect]
	flags   map[handle.Node]visual.NodeFlags
	pressed handle.Node
	hovered handle.Node
	focused handle.Node
}

func newShell() *shell {
	return &shell{flags: map[handle.Node]visual.NodeFlags{}}
}

func (s *shell) add(r graphics.Rect, f visual.NodeFlags) handle.Node {
	n := s.bounds.Create(r)
	s.flags[n] = f
	return n
}

func (s *shell) NodeBounds(node handle.Node) graphics.Rect  { return *s.bounds.Get(node) }
func (s *shell) CurrentPressedNode() handle.Node            { return s.pressed }
func (s *shell) NodeFlags(node handle.Node) visual.NodeFlags { return s.flags[node] }

func (s *shell) snapshot() visual.InteractionSnapshot {
	return visual.InteractionSnapshot{Pressed: s.pressed, Hovered: s.hovered, Focused: s.focused}
}

type box struct {
	node   handle.Node
	ev     handle.Data
	vis    handle.Data
	bounds graphics.Rect
	label  string
	taps   int
}

// flash is one in-flight tap animation.
type flash struct {
	anim    handle.Animation
	started time.Time
	fresh   bool
}

func main() {
	sheetPath := flag.String("sheet", "styles.yaml", "path to the style sheet")
	flag.Parse()
	if err := run(*sheetPath); err != nil {
		fmt.Fprintln(os.Stderr, "showcase:", err)
		os.Exit(1)
	}
}

func run(sheetPath string) error {
	sheet, err := styles.LoadSheet(sheetPath)
	if err != nil {
		return err
	}

	sh := newShell()
	evLayer := events.NewEventLayer(sh)
	visLayer := visual.NewVisualLayer(sh, sheet.Len(), dynamicSlots)
	animator := visual.NewAnimator(visLayer)

	// Every interaction state gets a fixed appearance from the sheet.
	constant := func(to visual.StyleIndex) visual.TransitionFunc {
		return func(visual.StyleIndex) visual.StyleIndex { return to }
	}
	visLayer.SetStyleTransition(visual.StyleTransition{
		ToInactiveOut:  constant(styleIdle),
		ToInactiveOver: constant(styleHover),
		ToPressedOut:   constant(stylePressed),
		ToPressedOver:  constant(stylePressed),
		ToFocusedOut:   constant(styleFocused),
		ToFocusedOver:  constant(styleFocused),
		ToDisabled:     constant(styleDisabled),
	})

	var boxes []*box
	flashes := map[handle.Data]*flash{}

	addBox := func(col, row int, label string, flags visual.NodeFlags) {
		r := graphics.RectFromSize(float64(3+col*22), float64(2+row*7), 18, 5)
		b := &box{node: sh.add(r, flags), bounds: r, label: label}
		b.vis = visLayer.Create(b.node, styleIdle)
		b.ev = evLayer.OnTapOrClick(b.node, func(handle.Data, *gestures.PointerEvent) {
			b.taps++
			if old, ok := flashes[b.vis]; ok {
				animator.Clean(visual.NewIndexSet(old.anim.Index()))
			}
			a := animator.Add(styleFlash, styleIdle, b.vis, 0)
			flashes[b.vis] = &flash{anim: a, started: time.Now(), fresh: true}
		})
		boxes = append(boxes, b)
	}

	addBox(0, 0, "alpha", visual.NodeFocusable)
	addBox(1, 0, "beta", visual.NodeFocusable)
	addBox(2, 0, "gamma", visual.NodeFocusable)
	addBox(0, 1, "delta", visual.NodeFocusable)
	addBox(1, 1, "epsilon", 0)
	addBox(2, 1, "off", visual.NodeDisabled)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
	}()

	hitTest := func(pos graphics.Offset) *box {
		for i := len(boxes) - 1; i >= 0; i-- {
			if sh.NodeBounds(boxes[i].node).Contains(pos) {
				return boxes[i]
			}
		}
		return nil
	}
	find := func(node handle.Node) *box {
		for _, b := range boxes {
			if b.node == node {
				return b
			}
		}
		return nil
	}

	// Per-slot blended appearance, refreshed whenever the pool uploads.
	slotAppearance := make([]styles.Style, dynamicSlots)

	var prevButtons tcell.ButtonMask
	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Rune() == 'q':
				return nil
			case ev.Key() == tcell.KeyTAB:
				moveFocus(sh, evLayer, visLayer, boxes, find)
			}

		case *tcell.EventMouse:
			x, y := ev.Position()
			pos := graphics.Offset{X: float64(x), Y: float64(y)}
			target := hitTest(pos)
			snap := sh.snapshot

			// Hover bookkeeping before the button edges.
			if hoveredNode := nodeOf(target); hoveredNode != sh.hovered {
				if old := find(sh.hovered); old != nil {
					evLayer.PointerLeave(old.ev, leftAt(pos))
					visLayer.Leave(old.vis, snap())
				}
				sh.hovered = hoveredNode
				if target != nil {
					evLayer.PointerEnter(target.ev, leftAt(pos))
					visLayer.Enter(target.vis, snap())
				}
			}

			buttons := ev.Buttons()
			pressedEdge := buttons&tcell.Button1 != 0 && prevButtons&tcell.Button1 == 0
			releasedEdge := buttons&tcell.Button1 == 0 && prevButtons&tcell.Button1 != 0
			prevButtons = buttons

			switch {
			case pressedEdge && target != nil:
				evLayer.PointerPress(target.ev, leftAt(pos))
				sh.pressed = target.node
				visLayer.Press(target.vis, snap())
			case releasedEdge:
				if pressedBox := find(sh.pressed); pressedBox != nil {
					evLayer.PointerRelease(pressedBox.ev, leftAt(pos))
					sh.pressed = handle.Node{}
					visLayer.Release(pressedBox.vis, snap())
				}
			case target != nil:
				evLayer.PointerMove(target.ev, leftAt(pos))
				visLayer.Move(target.vis, snap())
			}

		case *tcell.EventInterrupt:
			advanceFlashes(animator, visLayer, flashes)
			refreshSlots(visLayer, animator, sheet, flashes, slotAppearance)
			visLayer.Update(sh.snapshot())
			draw(screen, sheet, visLayer, boxes, slotAppearance)

		case *tcell.EventResize:
			screen.Sync()

		case nil:
			return nil
		}
	}
}

func nodeOf(b *box) handle.Node {
	if b == nil {
		return handle.Node{}
	}
	return b.node
}

func leftAt(pos graphics.Offset) *gestures.PointerEvent {
	return &gestures.PointerEvent{Device: gestures.DeviceMouseLeft, Position: pos}
}

func moveFocus(sh *shell, evLayer *events.EventLayer, visLayer *visual.VisualLayer, boxes []*box, find func(handle.Node) *box) {
	focusable := make([]*box, 0, len(boxes))
	for _, b := range boxes {
		if sh.NodeFlags(b.node).Has(visual.NodeFocusable) {
			focusable = append(focusable, b)
		}
	}
	if len(focusable) == 0 {
		return
	}
	next := 0
	for i, b := range focusable {
		if b.node == sh.focused {
			next = (i + 1) % len(focusable)
			break
		}
	}
	if old := find(sh.focused); old != nil {
		evLayer.Blur(old.ev)
		sh.focused = handle.Node{}
		visLayer.Blur(old.vis, sh.snapshot())
	}
	b := focusable[next]
	evLayer.Focus(b.ev, leftAt(graphics.Offset{}))
	sh.focused = b.node
	visLayer.Focus(b.vis, sh.snapshot())
}

// advanceFlashes drives the animator from wall-clock progress: new
// flashes start, expired ones stop, the rest stay active.
func advanceFlashes(animator *visual.Animator, visLayer *visual.VisualLayer, flashes map[handle.Data]*flash) {
	var active, started, stopped visual.IndexSet
	now := time.Now()
	var done []handle.Data
	for data, f := range flashes {
		idx := f.anim.Index()
		if f.fresh {
			f.fresh = false
			started.Add(idx)
		}
		if now.Sub(f.started) >= flashDuration {
			stopped.Add(idx)
			done = append(done, data)
		} else {
			active.Add(idx)
		}
	}
	animator.Advance(active, started, stopped, visLayer.CalculatedStyles())
	for _, data := range done {
		delete(flashes, data)
	}
}

// refreshSlots recomputes the blended appearance of every allocated
// dynamic slot from its animation's progress.
func refreshSlots(visLayer *visual.VisualLayer, animator *visual.Animator, sheet *styles.Sheet, flashes map[handle.Data]*flash, out []styles.Style) {
	now := time.Now()
	for _, f := range flashes {
		slot, ok := animator.Slot(f.anim)
		if !ok {
			continue
		}
		t := float64(now.Sub(f.started)) / float64(flashDuration)
		out[slot] = styles.Blend(sheet.Style(int(styleFlash)), sheet.Style(int(styleIdle)), t)
		visLayer.Pool().TakeNeedsUpload(slot)
	}
}

func draw(screen tcell.Screen, sheet *styles.Sheet, visLayer *visual.VisualLayer, boxes []*box, slotAppearance []styles.Style) {
	screen.Fill(' ', tcell.StyleDefault)
	for _, b := range boxes {
		idx := visLayer.Style(b.vis)
		var appearance styles.Style
		if visLayer.IsDynamic(idx) {
			appearance = slotAppearance[int(idx)-visLayer.StyleCount()]
		} else {
			appearance = sheet.Style(int(idx))
		}
		drawBox(screen, b, appearance)
	}
	drawText(screen, 2, 16, tcell.StyleDefault, "click boxes, Tab to focus, q to quit")
	screen.Show()
}

func drawBox(screen tcell.Screen, b *box, appearance styles.Style) {
	r, g, bl := appearance.Background.RGB255()
	fr, fg, fb := appearance.Foreground.RGB255()
	style := tcell.StyleDefault.
		Background(tcell.NewRGBColor(int32(r), int32(g), int32(bl))).
		Foreground(tcell.NewRGBColor(int32(fr), int32(fg), int32(fb)))

	rect := b.bounds
	for y := int(rect.Top); y < int(rect.Bottom); y++ {
		for x := int(rect.Left); x < int(rect.Right); x++ {
			screen.SetContent(x, y, ' ', nil, style)
		}
	}
	label := fmt.Sprintf("%s %d", b.label, b.taps)
	drawText(screen, int(rect.Left)+2, int(rect.Top+rect.Bottom)/2, style, label)
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
