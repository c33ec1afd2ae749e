package scene

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-freecam/common"
	"github.com/Carmen-Shannon/oxy-freecam/engine/camera"
	"github.com/Carmen-Shannon/oxy-freecam/engine/game_object"
)

// defaultCullChunk is the number of objects a single culling task tests.
const defaultCullChunk = 256

// Scene holds a registry of GameObjects viewed through a Camera and answers which of
// them are inside the camera frustum. Large registries are culled in parallel chunks
// on a worker pool. Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// CullingDisabled reports whether Visible skips the frustum test.
	CullingDisabled() bool

	// SetCullingDisabled enables or disables frustum culling.
	//
	// Parameters:
	//   - disabled: true to treat every enabled object as visible
	SetCullingDisabled(disabled bool)

	// Count returns the number of GameObjects in the registry.
	//
	// Returns:
	//   - int: count of registered objects
	Count() int

	// Add registers a GameObject. Objects without an ID are assigned the next free one.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - uint64: the assigned object ID
	Add(obj game_object.GameObject) uint64

	// Get retrieves a GameObject by its ID.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove removes a GameObject from the registry by ID.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Clear removes all objects from the scene.
	Clear()

	// Visible returns the enabled objects whose bounding spheres intersect the camera
	// frustum, ordered by ID. The camera matrices are used as last updated.
	//
	// Returns:
	//   - []game_object.GameObject: objects in view
	Visible() []game_object.GameObject

	// Close stops the culling worker pool.
	Close()
}

type scene struct {
	mu *sync.RWMutex

	name            string
	cam             camera.Camera
	registry        map[uint64]game_object.GameObject
	nextID          uint64
	cullingDisabled bool

	cullChunk   int
	cullWorkers int
	cullPool    worker.DynamicWorkerPool
}

var _ Scene = &scene{}

// NewScene creates a new Scene viewed through the given camera.
// Panics if cam is nil.
//
// Parameters:
//   - name: the scene identifier
//   - cam: the camera whose frustum is used for visibility
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		mu:          &sync.RWMutex{},
		name:        name,
		cam:         cam,
		registry:    make(map[uint64]game_object.GameObject),
		nextID:      1,
		cullChunk:   defaultCullChunk,
		cullWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the pool after options so WithCullWorkers can override the default.
	s.cullPool = worker.NewDynamicWorkerPool(s.cullWorkers, 256, 1*time.Second)

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) CullingDisabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cullingDisabled
}

func (s *scene) SetCullingDisabled(disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cullingDisabled = disabled
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(obj)
}

// addLocked registers obj, assigning an ID when it has none. Caller must hold s.mu write lock.
func (s *scene) addLocked(obj game_object.GameObject) uint64 {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
	}
	if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}
	s.registry[obj.ID()] = obj
	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registry, id)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = make(map[uint64]game_object.GameObject)
}

func (s *scene) Visible() []game_object.GameObject {
	s.mu.RLock()
	objects := make([]game_object.GameObject, 0, len(s.registry))
	for _, obj := range s.registry {
		if obj.Enabled() {
			objects = append(objects, obj)
		}
	}
	cam := s.cam
	disabled := s.cullingDisabled
	chunk := s.cullChunk
	s.mu.RUnlock()

	sort.Slice(objects, func(i, j int) bool { return objects[i].ID() < objects[j].ID() })
	if disabled || cam == nil {
		return objects
	}

	frustum := cam.Frustum()
	if len(objects) <= chunk {
		return cullRange(frustum, objects)
	}

	// Each task culls one contiguous chunk into its own slot; the WaitGroup is the
	// per-call barrier since pool.Wait() blocks until workers idle-exit.
	results := make([][]game_object.GameObject, (len(objects)+chunk-1)/chunk)
	var wg sync.WaitGroup
	for i := range results {
		start := i * chunk
		end := min(start+chunk, len(objects))
		slot := i

		wg.Add(1)
		s.cullPool.SubmitTask(worker.Task{
			ID: slot,
			Do: func() (any, error) {
				defer wg.Done()
				results[slot] = cullRange(frustum, objects[start:end])
				return nil, nil
			},
		})
	}
	wg.Wait()

	visible := make([]game_object.GameObject, 0, len(objects))
	for _, part := range results {
		visible = append(visible, part...)
	}
	return visible
}

func (s *scene) Close() {
	s.cullPool.Stop()
}

// cullRange returns the objects whose bounding spheres intersect the frustum, keeping their order.
func cullRange(frustum common.Frustum, objects []game_object.GameObject) []game_object.GameObject {
	visible := make([]game_object.GameObject, 0, len(objects))
	for _, obj := range objects {
		center, radius := obj.BoundingSphere()
		if frustum.IntersectsSphere(center, radius) {
			visible = append(visible, obj)
		}
	}
	return visible
}
