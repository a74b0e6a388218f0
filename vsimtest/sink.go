package vsimtest

import "github.com/pkg/errors"

// SinkRecorder is a trace sink that records calls instead of writing a
// file. With FailOpen set, Open fails, simulating an unwritable path.
//
type SinkRecorder struct {
	FailOpen bool
	Log      *Log

	Path   string
	Opens  int
	Dumps  []uint64
	Closes int
}

// Open records the path, or fails when FailOpen is set.
func (s *SinkRecorder) Open(path string) error {
	if s.FailOpen {
		return errors.New("open " + path + ": permission denied")
	}
	s.Path = path
	s.Opens++
	return nil
}

// Dump records the timestamp.
func (s *SinkRecorder) Dump(t uint64) {
	s.Dumps = append(s.Dumps, t)
	s.Log.add("dump@%d", t)
}

// Close records the call.
func (s *SinkRecorder) Close() error {
	s.Closes++
	s.Log.add("close")
	return nil
}
