package drag

import (
	"errors"
	"testing"

	"gioui.org/f32"

	"github.com/justyntemme/launchgrid/internal/model"
)

var (
	safari = model.NewApp("Safari", "/Applications/Safari.app")
	mail   = model.NewApp("Mail", "/Applications/Mail.app")
	folder = model.NewFolder("Work", model.NewApp("Notes", "/Applications/Notes.app"))
	empty  = model.NewEmpty()
)

func TestStartDragTransitions(t *testing.T) {
	c := NewCoordinator(0)
	if c.State() != Idle {
		t.Fatalf("new coordinator state = %v", c.State())
	}

	id, err := c.StartDrag(safari, f32.Pt(10, 10))
	if err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	if !c.Active() {
		t.Fatal("coordinator should be dragging")
	}

	again, err := c.StartDrag(safari, f32.Pt(50, 50))
	if err != nil || again != id {
		t.Errorf("StartDrag with same item should be a no-op, got id=%d err=%v", again, err)
	}
	s, _ := c.Session()
	if s.Position != f32.Pt(10, 10) {
		t.Errorf("no-op StartDrag moved position to %v", s.Position)
	}

	if _, err := c.StartDrag(mail, f32.Pt(0, 0)); !errors.Is(err, ErrAlreadyDragging) {
		t.Errorf("StartDrag with other item: err = %v, want ErrAlreadyDragging", err)
	}
}

func TestUpdatePositionDoesNotChangeTargets(t *testing.T) {
	c := NewCoordinator(0)
	id, _ := c.StartDrag(safari, f32.Pt(0, 0))
	c.SetDropIndex(id, 4)
	if err := c.UpdatePosition(id, f32.Pt(30, 40)); err != nil {
		t.Fatalf("UpdatePosition: %v", err)
	}
	s, _ := c.Session()
	if s.Position != f32.Pt(30, 40) {
		t.Errorf("Position = %v", s.Position)
	}
	if s.DropIndex != 4 || s.Hovered != nil {
		t.Errorf("UpdatePosition changed targets: drop=%d hovered=%v", s.DropIndex, s.Hovered)
	}
}

func TestSetHoveredFolderIntent(t *testing.T) {
	testCases := []struct {
		name     string
		dragging model.Item
		hovered  *model.Item
		want     bool
	}{
		{"app on app", safari, &mail, true},
		{"app on itself", safari, &safari, false},
		{"app on folder", safari, &folder, false},
		{"folder on app", folder, &mail, false},
		{"app on placeholder", safari, &empty, false},
		{"nothing hovered", safari, nil, false},
	}
	for _, tc := range testCases {
		c := NewCoordinator(0)
		id, _ := c.StartDrag(tc.dragging, f32.Pt(0, 0))
		if err := c.SetHovered(id, tc.hovered); err != nil {
			t.Fatalf("%s: SetHovered: %v", tc.name, err)
		}
		s, _ := c.Session()
		if s.CreatingFolder != tc.want {
			t.Errorf("%s: CreatingFolder = %v, want %v", tc.name, s.CreatingFolder, tc.want)
		}
		if tc.want && (s.FolderTarget == nil || s.FolderTarget.ID != tc.hovered.ID) {
			t.Errorf("%s: FolderTarget = %v", tc.name, s.FolderTarget)
		}
		if !tc.want && s.FolderTarget != nil {
			t.Errorf("%s: FolderTarget should be cleared", tc.name)
		}
	}
}

func TestHoverClearsPreviousIntent(t *testing.T) {
	c := NewCoordinator(0)
	id, _ := c.StartDrag(safari, f32.Pt(0, 0))
	c.SetHovered(id, &mail)
	c.SetHovered(id, &folder)
	s, _ := c.Session()
	if s.CreatingFolder || s.FolderTarget != nil {
		t.Error("hovering a folder should clear folder intent")
	}
}

func TestEndReturnsResultAndClears(t *testing.T) {
	c := NewCoordinator(0)
	id, _ := c.StartDrag(safari, f32.Pt(0, 0))
	c.SetDropIndex(id, 2)
	c.SetHovered(id, &mail)

	s, err := c.End()
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if s.DropIndex != 2 || !s.CreatingFolder || s.FolderTarget.ID != mail.ID {
		t.Errorf("End returned %+v", s)
	}
	if c.State() != Idle {
		t.Errorf("state after End = %v", c.State())
	}
	if _, ok := c.Session(); ok {
		t.Error("session should be cleared after End")
	}
	if _, err := c.End(); !errors.Is(err, ErrNotDragging) {
		t.Errorf("second End: err = %v, want ErrNotDragging", err)
	}
}

func TestEventsAfterEndRejected(t *testing.T) {
	c := NewCoordinator(0)
	id, _ := c.StartDrag(safari, f32.Pt(0, 0))
	c.End()

	if err := c.UpdatePosition(id, f32.Pt(1, 1)); !errors.Is(err, ErrNotDragging) {
		t.Errorf("UpdatePosition after End: %v", err)
	}
	if err := c.SetHovered(id, &mail); !errors.Is(err, ErrNotDragging) {
		t.Errorf("SetHovered after End: %v", err)
	}

	next, _ := c.StartDrag(mail, f32.Pt(0, 0))
	if err := c.UpdatePosition(id, f32.Pt(5, 5)); !errors.Is(err, ErrStaleSession) {
		t.Errorf("stale UpdatePosition: err = %v, want ErrStaleSession", err)
	}
	if err := c.SetDropIndex(id, 3); !errors.Is(err, ErrStaleSession) {
		t.Errorf("stale SetDropIndex: err = %v, want ErrStaleSession", err)
	}
	s, _ := c.Session()
	if s.ID != next || s.DropIndex != -1 || s.Position != f32.Pt(0, 0) {
		t.Errorf("stale events leaked into new session: %+v", s)
	}
}

func TestCancelHasNoResult(t *testing.T) {
	c := NewCoordinator(0)
	id, _ := c.StartDrag(safari, f32.Pt(0, 0))
	c.SetDropIndex(id, 7)
	c.Cancel()
	if c.Active() {
		t.Error("Cancel should end the session")
	}
	if _, err := c.End(); !errors.Is(err, ErrNotDragging) {
		t.Errorf("End after Cancel: err = %v", err)
	}
}

func TestPressMoveThreshold(t *testing.T) {
	c := NewCoordinator(10)
	c.Press(safari, f32.Pt(100, 100))
	if c.State() != Armed {
		t.Fatalf("state after Press = %v", c.State())
	}
	if c.Move(f32.Pt(105, 105)) {
		t.Error("movement under threshold should not start a drag")
	}
	if !c.Move(f32.Pt(120, 100)) {
		t.Fatal("movement past threshold should start a drag")
	}
	s, ok := c.Session()
	if !ok || s.Dragging.ID != safari.ID || s.Position != f32.Pt(120, 100) {
		t.Errorf("session after threshold = %+v", s)
	}
	if c.Move(f32.Pt(130, 100)) {
		t.Error("Move while dragging should not report a new start")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	c := NewCoordinator(0)
	id, _ := c.StartDrag(safari, f32.Pt(0, 0))
	c.SetHovered(id, &mail)
	s, _ := c.Session()
	s.FolderTarget.Name = "mutated"
	again, _ := c.Session()
	if again.FolderTarget.Name != "Mail" {
		t.Error("Session snapshot shares storage with coordinator")
	}
}
