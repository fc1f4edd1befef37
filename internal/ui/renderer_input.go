package ui

import (
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/widget"

	"github.com/justyntemme/launchgrid/internal/board"
	"github.com/justyntemme/launchgrid/internal/debug"
)

// scrollRange bounds the scroll delta delivered per event.
var scrollRange = pointer.ScrollRange{Min: -1 << 16, Max: 1 << 16}

// processInput drains pointer, keyboard and editor events. The last event
// that asks for an action wins.
func (r *Renderer) processInput(gtx layout.Context, state *State, f Frame) UIEvent {
	var eventOut UIEvent
	set := func(ev UIEvent) {
		if ev.Action != ActionNone {
			eventOut = ev
		}
	}

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  &r.rootTag,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Scroll,
			ScrollX: scrollRange,
			ScrollY: scrollRange,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch e.Kind {
		case pointer.Press:
			if e.Source == pointer.Mouse && !e.Buttons.Contain(pointer.ButtonPrimary) {
				continue
			}
			// Pressing the grid takes focus back from the editors.
			gtx.Execute(key.FocusCmd{Tag: &r.rootTag})
			r.editingName = false
			r.ctrl.Press(f, e.Position)
		case pointer.Drag:
			r.ctrl.Drag(f, e.Position)
		case pointer.Release:
			set(r.ctrl.Release(f, e.Position))
		case pointer.Cancel:
			r.ctrl.Cancel()
		case pointer.Scroll:
			if !r.ctrl.Dragging() && r.ctrl.Scroll(f, e.Scroll) {
				debug.Log(debug.UI, "scroll flipped to page %d", r.ctrl.Page())
			}
		}
	}

	set(r.processHotkeys(gtx, state, f))
	set(r.processEditors(gtx, state))

	if r.titleClick.Clicked(gtx) && state.Folder != nil {
		r.startRename(gtx, state.Folder.Name)
	}
	return eventOut
}

// buildHotkeyFilters creates one key.Filter per configured hotkey, all
// bound to the grid's focus tag.
func (r *Renderer) buildHotkeyFilters() []event.Filter {
	if r.hotkeys == nil {
		return nil
	}
	var filters []event.Filter
	for _, h := range r.hotkeys.All() {
		filters = append(filters, h.Filter(&r.rootTag))
	}
	return filters
}

func (r *Renderer) processHotkeys(gtx layout.Context, state *State, f Frame) UIEvent {
	filters := r.buildHotkeyFilters()
	if len(filters) == 0 {
		return UIEvent{}
	}
	var eventOut UIEvent
	for {
		e, ok := gtx.Event(filters...)
		if !ok {
			break
		}
		k, ok := e.(key.Event)
		if !ok || k.State != key.Press {
			continue
		}
		debug.Log(debug.UI, "key pressed: name=%q mods=0x%x", k.Name, k.Modifiers)

		h := r.hotkeys
		switch {
		case h.Hide.Matches(k):
			// Escape unwinds one level at a time.
			switch {
			case r.ctrl.Dragging():
				r.ctrl.Cancel()
			case state.Folder != nil:
				eventOut = UIEvent{Action: ActionCloseFolder}
			default:
				eventOut = UIEvent{Action: ActionHide}
			}
		case h.NextPage.Matches(k):
			r.ctrl.StepPage(f, 1)
		case h.PrevPage.Matches(k):
			r.ctrl.StepPage(f, -1)
		case h.FirstPage.Matches(k):
			r.ctrl.GoPage(f, 0)
		case h.LastPage.Matches(k):
			r.ctrl.GoPage(f, r.ctrl.LastPage(f))
		case h.Search.Matches(k):
			gtx.Execute(key.FocusCmd{Tag: &r.searchEditor})
		case h.Rescan.Matches(k):
			eventOut = UIEvent{Action: ActionRescan}
		case h.RenameFolder.Matches(k):
			if state.Folder != nil {
				r.startRename(gtx, state.Folder.Name)
			}
		}
	}
	return eventOut
}

// processEditors handles the folder name and search fields.
func (r *Renderer) processEditors(gtx layout.Context, state *State) UIEvent {
	var eventOut UIEvent

	for {
		_, ok := gtx.Event(key.Filter{Focus: &r.nameEditor, Name: key.NameEscape})
		if !ok {
			break
		}
		r.editingName = false
		gtx.Execute(key.FocusCmd{Tag: &r.rootTag})
	}
	for {
		e, ok := r.nameEditor.Update(gtx)
		if !ok {
			break
		}
		if _, ok := e.(widget.SubmitEvent); ok && r.editingName && state.Folder != nil {
			eventOut = UIEvent{Action: ActionRenameFolder, FolderID: state.Folder.ID, Name: r.nameEditor.Text()}
			r.editingName = false
			gtx.Execute(key.FocusCmd{Tag: &r.rootTag})
		}
	}

	for {
		_, ok := gtx.Event(key.Filter{Focus: &r.searchEditor, Name: key.NameEscape})
		if !ok {
			break
		}
		r.searchEditor.SetText("")
		gtx.Execute(key.FocusCmd{Tag: &r.rootTag})
	}
	for {
		e, ok := r.searchEditor.Update(gtx)
		if !ok {
			break
		}
		if _, ok := e.(widget.SubmitEvent); ok {
			// Return launches the best match.
			if results := board.Search(state.Items, r.Query()); len(results) > 0 {
				eventOut = UIEvent{Action: ActionLaunch, Item: results[0]}
			}
		}
	}
	return eventOut
}

func (r *Renderer) startRename(gtx layout.Context, name string) {
	r.nameEditor.SetText(name)
	n := len([]rune(name))
	r.nameEditor.SetCaret(n, 0)
	r.editingName = true
	gtx.Execute(key.FocusCmd{Tag: &r.nameEditor})
}
