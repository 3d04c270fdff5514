package protocol

import (
	"github.com/bnema/waycore/internal/client"
	"github.com/bnema/waycore/internal/object"
	"github.com/bnema/waycore/internal/wire"
)

// JayCompositorObject is the supplemented compositor singleton: the
// Configuration-ABI-adjacent surface for log files, screenshots, log
// level, idle notification, quitting, and the session-lock unlock
// request, none of which upstream Wayland or xdg-shell expose.
type JayCompositorObject struct {
	id     object.ID
	client *client.Client
	core   *Core
}

func (j *JayCompositorObject) ID() object.ID              { return j.id }
func (j *JayCompositorObject) Interface() *object.Interface { return jayCompositorInterface }
func (j *JayCompositorObject) BoundVersion() uint32        { return 1 }
func (j *JayCompositorObject) OnDestroy()                  {}

func (j *JayCompositorObject) Dispatch(opcode uint16, args *wire.ArgReader, fds []int) error {
	switch opcode {
	case 0: // destroy
		return j.client.RemoveObject(j.id, j.core.displayObj(j.client), deleteIDOpcode)
	case 1: // get_log_file
		newID := args.NewID()
		if err := args.Err(); err != nil {
			return err
		}
		lf := &JayLogFileObject{id: object.ID(newID), client: j.client}
		if err := j.client.Registry.AddClientObj(lf.id, lf); err != nil {
			return err
		}
		path := ""
		if j.core.LogFilePathFn != nil {
			p, err := j.core.LogFilePathFn()
			if err == nil {
				path = p
			}
		}
		return j.client.SendEvent(lf, 0, wire.NewArgWriter().String(path))
	case 2: // quit
		if j.core.QuitFn != nil {
			j.core.QuitFn()
		}
		return nil
	case 3: // set_log_level
		level := args.String()
		if err := args.Err(); err != nil {
			return err
		}
		if j.core.SetLogLevelFn != nil {
			return j.core.SetLogLevelFn(level)
		}
		return nil
	case 4: // take_screenshot
		newID := args.NewID()
		if err := args.Err(); err != nil {
			return err
		}
		ss := &JayScreenshotObject{id: object.ID(newID), client: j.client}
		if err := j.client.Registry.AddClientObj(ss.id, ss); err != nil {
			return err
		}
		if j.core.ScreenshotFn == nil {
			return j.client.SendEvent(ss, 1, wire.NewArgWriter().String("screenshots are not supported by this backend"))
		}
		path, err := j.core.ScreenshotFn()
		if err != nil {
			return j.client.SendEvent(ss, 1, wire.NewArgWriter().String(err.Error()))
		}
		return j.client.SendEvent(ss, 0, wire.NewArgWriter().String(path))
	case 5: // get_idle
		newID := args.NewID()
		if err := args.Err(); err != nil {
			return err
		}
		return j.client.Registry.AddClientObj(object.ID(newID), &JayIdleObject{id: object.ID(newID), client: j.client, core: j.core})
	case 6: // get_client_id
		if err := args.Err(); err != nil {
			return err
		}
		return j.client.SendEvent(j, 0, wire.NewArgWriter().Uint32(uint32(j.client.ID())))
	case 7: // enable_symmetric_delete
		j.client.SymmetricDelete = true
		return nil
	case 8: // unlock
		j.client.SymmetricDelete = true // unlock also force-enables symmetric delete
		j.core.Disp.Unlock()
		return nil
	}
	return &object.ErrInvalidOpcode{Interface: jayCompositorInterface.Name, Opcode: opcode}
}

// JayLogFileObject is jay_log_file: a one-shot object carrying the
// compositor's active log file path.
type JayLogFileObject struct {
	id     object.ID
	client *client.Client
}

func (l *JayLogFileObject) ID() object.ID              { return l.id }
func (l *JayLogFileObject) Interface() *object.Interface { return jayLogFileInterface }
func (l *JayLogFileObject) BoundVersion() uint32        { return 1 }
func (l *JayLogFileObject) OnDestroy()                  {}
func (l *JayLogFileObject) Dispatch(opcode uint16, args *wire.ArgReader, fds []int) error {
	return &object.ErrInvalidOpcode{Interface: jayLogFileInterface.Name, Opcode: opcode}
}

// JayScreenshotObject is jay_screenshot: a one-shot object resolving to
// either ready(path) or failed(reason).
type JayScreenshotObject struct {
	id     object.ID
	client *client.Client
}

func (s *JayScreenshotObject) ID() object.ID              { return s.id }
func (s *JayScreenshotObject) Interface() *object.Interface { return jayScreenshotInterface }
func (s *JayScreenshotObject) BoundVersion() uint32        { return 1 }
func (s *JayScreenshotObject) OnDestroy()                  {}
func (s *JayScreenshotObject) Dispatch(opcode uint16, args *wire.ArgReader, fds []int) error {
	return &object.ErrInvalidOpcode{Interface: jayScreenshotInterface.Name, Opcode: opcode}
}

// JayIdleObject is jay_idle. Idle-timeout tracking isn't wired to any
// backend signal in this core (no compositor-wide activity timer), so
// this is an inert, destroyable handle — get_idle still returns a valid
// object per the request's new_id contract.
type JayIdleObject struct {
	id     object.ID
	client *client.Client
	core   *Core
}

func (i *JayIdleObject) ID() object.ID              { return i.id }
func (i *JayIdleObject) Interface() *object.Interface { return idleInterface }
func (i *JayIdleObject) BoundVersion() uint32        { return 1 }
func (i *JayIdleObject) OnDestroy()                  {}
func (i *JayIdleObject) Dispatch(opcode uint16, args *wire.ArgReader, fds []int) error {
	if opcode != 0 {
		return &object.ErrInvalidOpcode{Interface: idleInterface.Name, Opcode: opcode}
	}
	return i.client.RemoveObject(i.id, i.core.displayObj(i.client), deleteIDOpcode)
}
