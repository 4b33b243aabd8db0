package builder

// Configuration is the mutable state of one build session: the chosen base
// model, the ordered component records, and the derived total. TotalPrice is
// never written directly; the store recomputes it after every mutation.
type Configuration struct {
	BaseModel  string            `json:"baseModel"`
	Components []ComponentRecord `json:"components"`
	TotalPrice float64           `json:"totalPrice"`
}

// Clone returns a deep copy, so callers can read a configuration without
// holding the store lock.
func (c Configuration) Clone() Configuration {
	out := c
	out.Components = make([]ComponentRecord, len(c.Components))
	copy(out.Components, c.Components)
	return out
}

// SnapshotComponent is a component record frozen at submission time, with the
// price parsed into a number. Field order matches the persisted blob layout.
type SnapshotComponent struct {
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Capacity    string  `json:"capacity,omitempty"`
	StorageType string  `json:"storageType,omitempty"`
}

// Snapshot is the immutable copy of a configuration taken at the moment of a
// successful submit. Only the submission pipeline creates these.
type Snapshot struct {
	BaseModel  string              `json:"baseModel"`
	Components []SnapshotComponent `json:"components"`
	TotalPrice float64             `json:"totalPrice"`
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.Components = make([]SnapshotComponent, len(s.Components))
	copy(out.Components, s.Components)
	return out
}

// snapshot freezes the current configuration. Prices that fail to parse are
// carried as 0, consistent with how the reconciler sums the total.
func (c Configuration) snapshot() Snapshot {
	snap := Snapshot{
		BaseModel:  c.BaseModel,
		Components: make([]SnapshotComponent, 0, len(c.Components)),
		TotalPrice: c.TotalPrice,
	}
	for _, rec := range c.Components {
		price, _ := ParsePrice(rec.Price)
		snap.Components = append(snap.Components, SnapshotComponent{
			Type:        string(rec.Type),
			Name:        rec.Name,
			Price:       price,
			Capacity:    rec.Capacity,
			StorageType: string(rec.StorageType),
		})
	}
	return snap
}
