package scene

import (
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/oxy-freecam/engine/camera"
	"github.com/Carmen-Shannon/oxy-freecam/engine/game_object"
)

func newTestCamera() camera.Camera {
	return camera.NewCamera(
		camera.WithAspect(4.0/3.0),
		camera.WithController(camera.NewFreeCamera()),
	)
}

func names(objects []game_object.GameObject) []string {
	out := make([]string, len(objects))
	for i, obj := range objects {
		out[i] = obj.Name()
	}
	return out
}

func TestRegistry(t *testing.T) {
	s := NewScene("test", newTestCamera())
	defer s.Close()

	a := game_object.NewGameObject(game_object.WithName("a"))
	b := game_object.NewGameObject(game_object.WithName("b"), game_object.WithID(10))

	if id := s.Add(a); id != 1 {
		t.Errorf("expected first ID 1, got %d", id)
	}
	if id := s.Add(b); id != 10 {
		t.Errorf("expected explicit ID 10 to be kept, got %d", id)
	}
	c := game_object.NewGameObject(game_object.WithName("c"))
	if id := s.Add(c); id != 11 {
		t.Errorf("expected IDs to continue after 10, got %d", id)
	}

	if s.Count() != 3 || s.Get(10) != b {
		t.Errorf("unexpected registry state: count %d", s.Count())
	}
	s.Remove(10)
	if s.Get(10) != nil || s.Count() != 2 {
		t.Errorf("expected object 10 removed")
	}
	s.Clear()
	if s.Count() != 0 {
		t.Errorf("expected empty scene after Clear, got %d", s.Count())
	}
}

func TestVisibleCullsAgainstFrustum(t *testing.T) {
	s := NewScene("test", newTestCamera(), WithObjects(
		game_object.NewGameObject(game_object.WithName("ahead"), game_object.WithBoundingRadius(0.5)),
		game_object.NewGameObject(game_object.WithName("behind"), game_object.WithPosition(0, 1, 10), game_object.WithBoundingRadius(0.5)),
		game_object.NewGameObject(game_object.WithName("far right"), game_object.WithPosition(100, 1, 0), game_object.WithBoundingRadius(0.5)),
		game_object.NewGameObject(game_object.WithName("disabled"), game_object.WithEnabled(false)),
	))
	defer s.Close()

	got := names(s.Visible())
	if len(got) != 1 || got[0] != "ahead" {
		t.Errorf("expected only [ahead] visible, got %v", got)
	}

	s.SetCullingDisabled(true)
	if got := names(s.Visible()); len(got) != 3 {
		t.Errorf("expected all enabled objects without culling, got %v", got)
	}
}

func TestVisibleFollowsCamera(t *testing.T) {
	cam := newTestCamera()
	s := NewScene("test", cam, WithObjects(
		game_object.NewGameObject(game_object.WithName("behind"), game_object.WithPosition(0, 1, 10), game_object.WithBoundingRadius(0.5)),
	))
	defer s.Close()

	if len(s.Visible()) != 0 {
		t.Fatalf("expected object behind the camera to be culled")
	}

	// Turn around: yaw -90 -> 90 looks down +Z.
	cam.Controller().ProcessMouseMovement(1800, 0, true)
	cam.Update()

	if got := names(s.Visible()); len(got) != 1 {
		t.Errorf("expected object in view after turning around, got %v", got)
	}
}

func TestParallelCullingMatchesSerial(t *testing.T) {
	cam := newTestCamera()
	var objects []game_object.GameObject
	for i := range 50 {
		// alternate between in front of and behind the camera
		z := float32(-5)
		if i%2 == 1 {
			z = 20
		}
		objects = append(objects, game_object.NewGameObject(
			game_object.WithName(fmt.Sprintf("obj%02d", i)),
			game_object.WithPosition(0, 1, z),
			game_object.WithBoundingRadius(0.5),
		))
	}

	serial := NewScene("serial", cam, WithObjects(objects...))
	defer serial.Close()
	parallel := NewScene("parallel", cam, WithObjects(objects...), WithCullChunk(4), WithCullWorkers(3))
	defer parallel.Close()

	want := names(serial.Visible())
	got := names(parallel.Visible())
	if len(want) != 25 {
		t.Fatalf("expected 25 visible objects, got %d", len(want))
	}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("parallel culling differs from serial\n got %v\nwant %v", got, want)
	}
}

func TestNewScenePanicsWithoutCamera(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for nil camera")
		}
	}()
	NewScene("broken", nil)
}
