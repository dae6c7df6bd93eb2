package snapshot

import "testing"

func TestValidate(t *testing.T) {
	base := func() Snapshot {
		return Snapshot{
			ProjectID:   "proj-1",
			InstanceID:  "inst-1",
			Units:       Nodes,
			CurrentSize: 3,
			MinSize:     1,
			MaxSize:     10,
		}
	}

	tests := map[string]struct {
		mutate  func(s *Snapshot)
		wantErr bool
	}{
		"valid snapshot":        {mutate: func(s *Snapshot) {}, wantErr: false},
		"missing project":       {mutate: func(s *Snapshot) { s.ProjectID = "" }, wantErr: true},
		"missing instance":      {mutate: func(s *Snapshot) { s.InstanceID = "" }, wantErr: true},
		"zero current size":     {mutate: func(s *Snapshot) { s.CurrentSize = 0 }, wantErr: true},
		"max below min":         {mutate: func(s *Snapshot) { s.MaxSize = 0 }, wantErr: true},
		"current above max":     {mutate: func(s *Snapshot) { s.CurrentSize = 99 }, wantErr: true},
		"negative cooldown":     {mutate: func(s *Snapshot) { s.ScaleOutCoolingMinutes = -1 }, wantErr: true},
		"negative overload cd":  {mutate: func(s *Snapshot) { v := int32(-5); s.OverloadCoolingMinutes = &v }, wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			s := base()
			tc.mutate(&s)
			err := s.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
