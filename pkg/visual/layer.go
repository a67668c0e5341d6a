package visual

import (
	"github.com/go-slate/slate/pkg/handle"

	slateerr "github.com/go-slate/slate/pkg/errors"
)

type element struct {
	node      handle.Node
	nominal   StyleIndex
	lastState stateKind
	flags     DirtyFlags
}

// VisualLayer owns one style slot per data element and resolves each
// element's calculated style from its interaction state.
//
// All methods must be called from the UI thread. Transitions apply to
// whatever style was current immediately before the triggering event, so
// consecutive state changes compose instead of restarting from the nominal
// style: a press while hovered remembers the hover mapping, and the
// release transition maps back out of it.
type VisualLayer struct {
	nodes        NodeSource
	styleCount   uint32
	dynamicCount uint32
	transition   StyleTransition
	elements     handle.Pool[handle.DataFamily, element]
	calculated   []StyleIndex
	pool         *StylePool
	animator     *Animator
}

// NewVisualLayer creates a visual layer with styleCount static styles and a
// dynamic pool of dynamicStyleCount slots. A dynamic count of zero is
// legal; animations then simply never obtain a slot.
func NewVisualLayer(nodes NodeSource, styleCount, dynamicStyleCount int) *VisualLayer {
	return &VisualLayer{
		nodes:        nodes,
		styleCount:   uint32(styleCount),
		dynamicCount: uint32(dynamicStyleCount),
		pool:         NewStylePool(dynamicStyleCount),
	}
}

// StyleCount returns the number of static styles.
func (v *VisualLayer) StyleCount() int {
	return int(v.styleCount)
}

// Pool returns the layer's dynamic style pool.
func (v *VisualLayer) Pool() *StylePool {
	return v.pool
}

// IsDynamic reports whether style addresses a dynamic pool slot.
func (v *VisualLayer) IsDynamic(style StyleIndex) bool {
	return uint32(style) >= v.styleCount && style != InvalidStyle
}

// Create adds an element attached to node with the given nominal style.
// The nominal style must be static.
func (v *VisualLayer) Create(node handle.Node, style StyleIndex) handle.Data {
	if uint32(style) >= v.styleCount {
		slateerr.Fail("visual.Create", "nominal style %d out of static range [0, %d)", style, v.styleCount)
	}
	data := v.elements.Create(element{node: node, nominal: style, lastState: stateInactiveOut})
	idx := data.Index()
	for idx >= len(v.calculated) {
		v.calculated = append(v.calculated, InvalidStyle)
	}
	v.calculated[idx] = style
	return data
}

// Remove frees the element. Its calculated slot becomes InvalidStyle; any
// animation still attached to the data goes dormant through the animator's
// own validity checks.
func (v *VisualLayer) Remove(data handle.Data) {
	v.elements.Get(data)
	v.calculated[data.Index()] = InvalidStyle
	v.elements.Remove(data)
}

// IsValid reports whether data refers to a live element of this layer.
func (v *VisualLayer) IsValid(data handle.Data) bool {
	return v.elements.IsValid(data)
}

// Node returns the node the element is attached to.
func (v *VisualLayer) Node(data handle.Data) handle.Node {
	return v.elements.Get(data).node
}

// SetStyle assigns a new nominal style and writes it through to the
// calculated style. A manual assignment over a running animation is the
// interference the animator's expectation check detects: the animation
// never overwrites the new value.
func (v *VisualLayer) SetStyle(data handle.Data, style StyleIndex) {
	if uint32(style) >= v.styleCount {
		slateerr.Fail("visual.SetStyle", "style %d out of static range [0, %d)", style, v.styleCount)
	}
	el := v.elements.Get(data)
	el.nominal = style
	if v.calculated[data.Index()] != style {
		v.calculated[data.Index()] = style
		el.flags |= NeedsDataUpdate
	}
}

// Style returns the element's calculated style.
func (v *VisualLayer) Style(data handle.Data) StyleIndex {
	v.elements.Get(data)
	return v.calculated[data.Index()]
}

// NominalStyle returns the element's nominal style.
func (v *VisualLayer) NominalStyle(data handle.Data) StyleIndex {
	return v.elements.Get(data).nominal
}

// CalculatedStyles returns the live per-slot calculated style array the
// draw collaborator consumes. Dead slots hold InvalidStyle. The same view
// is handed to [Animator.Advance] each tick.
func (v *VisualLayer) CalculatedStyles() []StyleIndex {
	return v.calculated
}

// SetStyleTransition assigns the layer's transition functions. If any
// function is non-nil, every element is marked as needing a data update,
// even when the functions are behaviorally identity. Per-event evaluation
// of a nil function, by contrast, is a strict no-op; callers rely on the
// assignment-time flag as a whole-layer restyle poke, so the two paths
// must not be unified.
func (v *VisualLayer) SetStyleTransition(t StyleTransition) {
	v.transition = t
	if t.assigned() {
		v.elements.ForEach(func(_ handle.Data, el *element) {
			el.flags |= NeedsDataUpdate
		})
	}
}

// Dirty returns the element's pending dirty flags.
func (v *VisualLayer) Dirty(data handle.Data) DirtyFlags {
	return v.elements.Get(data).flags
}

// TakeDirty returns and clears the element's pending dirty flags.
func (v *VisualLayer) TakeDirty(data handle.Data) DirtyFlags {
	el := v.elements.Get(data)
	flags := el.flags
	el.flags = 0
	return flags
}

// MarkDirty ors flags into the element's pending dirty flags.
func (v *VisualLayer) MarkDirty(data handle.Data, flags DirtyFlags) {
	v.elements.Get(data).flags |= flags
}

// Event notifications. The external dispatcher calls the one matching the
// raw input that changed interaction state; the event name is carried into
// the fatal report when a transition function misbehaves.

// Press re-evaluates the element after a press changed interaction state.
func (v *VisualLayer) Press(data handle.Data, snap InteractionSnapshot) {
	v.applyEvent(data, snap, "press")
}

// Release re-evaluates the element after a release.
func (v *VisualLayer) Release(data handle.Data, snap InteractionSnapshot) {
	v.applyEvent(data, snap, "release")
}

// Move re-evaluates the element after a pointer move.
func (v *VisualLayer) Move(data handle.Data, snap InteractionSnapshot) {
	v.applyEvent(data, snap, "move")
}

// Enter re-evaluates the element after the pointer entered its node.
func (v *VisualLayer) Enter(data handle.Data, snap InteractionSnapshot) {
	v.applyEvent(data, snap, "enter")
}

// Leave re-evaluates the element after the pointer left its node.
func (v *VisualLayer) Leave(data handle.Data, snap InteractionSnapshot) {
	v.applyEvent(data, snap, "leave")
}

// Focus re-evaluates the element after its node gained focus.
func (v *VisualLayer) Focus(data handle.Data, snap InteractionSnapshot) {
	v.applyEvent(data, snap, "focus")
}

// Blur re-evaluates the element after its node lost focus.
func (v *VisualLayer) Blur(data handle.Data, snap InteractionSnapshot) {
	v.applyEvent(data, snap, "blur")
}

// VisibilityLost re-evaluates the element after its node dropped out of
// the visible set.
func (v *VisualLayer) VisibilityLost(data handle.Data, snap InteractionSnapshot) {
	v.applyEvent(data, snap, "visibilityLost")
}

// Update reconciles every element against the snapshot. An element whose
// node lost press, hover or focus since its last evaluation, whether
// through input, removal, hiding, NoEvents or a draw-order drop, receives
// its Out transition here, exactly once, because only a state change
// applies a mapping. Enabled-state changes are read per element at
// evaluation time, so ToDisabled always sees current flags.
func (v *VisualLayer) Update(snap InteractionSnapshot) {
	v.elements.ForEach(func(data handle.Data, el *element) {
		v.applyState(data, el, v.resolveState(el, snap), "update")
	})
}

func (v *VisualLayer) applyEvent(data handle.Data, snap InteractionSnapshot, event string) {
	el := v.elements.Get(data)
	v.applyState(data, el, v.resolveState(el, snap), event)
}

// resolveState collapses snapshot and flags to the selected transition.
// Priority: Disabled, then Pressed > Focused(+Focusable) > Hover >
// Inactive, each branching Out/Over on simultaneous hover. A node that
// loses Focusable while focused resolves silently to whatever remains
// true; no blur transition fires.
func (v *VisualLayer) resolveState(el *element, snap InteractionSnapshot) stateKind {
	flags := v.nodes.NodeFlags(el.node)
	hovered := snap.Hovered == el.node
	switch {
	case flags.Has(NodeDisabled):
		return stateDisabled
	case snap.Pressed == el.node:
		if hovered {
			return statePressedOver
		}
		return statePressedOut
	case snap.Focused == el.node && flags.Has(NodeFocusable):
		if hovered {
			return stateFocusedOver
		}
		return stateFocusedOut
	case hovered:
		return stateInactiveOver
	default:
		return stateInactiveOut
	}
}

func (v *VisualLayer) applyState(data handle.Data, el *element, state stateKind, event string) {
	if state == el.lastState {
		return
	}
	fn := v.transition.forState(state)
	if fn == nil {
		el.lastState = state
		return
	}

	idx := data.Index()
	current := v.calculated[idx]
	base := current
	if state != stateDisabled {
		// While a dynamic animation targets this element, transitions
		// evaluate as if it had already finished. ToDisabled is the one
		// rule reading raw calculated state.
		base = v.logicalStyle(current)
	}

	result := fn(base)
	total := v.styleCount + v.dynamicCount
	if uint32(result) >= total {
		slateerr.Fail("visual."+event, "style transition result %d out of range [0, %d)", result, total)
	}
	el.lastState = state
	if result == base && current != base {
		// The transition lands on the running animation's target; playback
		// is already heading there, so the dynamic index stays in place.
		return
	}
	if result != current {
		v.calculated[idx] = result
		el.flags |= NeedsDataUpdate
	}
}

// logicalStyle resolves the style transitions reason about: the animation's
// recorded target when the current style is a dynamic slot driven by a
// running animation, the style itself otherwise.
func (v *VisualLayer) logicalStyle(style StyleIndex) StyleIndex {
	if !v.IsDynamic(style) || v.animator == nil {
		return style
	}
	slot := uint32(style) - v.styleCount
	if int(slot) >= v.pool.Capacity() {
		return style
	}
	anim := v.pool.Association(slot)
	if anim.IsNull() {
		return style
	}
	if st, ok := v.animator.animations.Lookup(anim); ok {
		return st.target
	}
	return style
}
