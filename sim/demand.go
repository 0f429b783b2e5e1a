package sim

// generateArrivals runs the arrival trial on every floor in index order, then
// ages everyone waiting on that floor. New passengers are aged in the tick
// they arrive.
func (s *Simulator) generateArrivals() {
	top := s.Config.TopFloor()
	for _, f := range s.Floors {
		if p := f.SpawnArrival(s.RNG, s.Config.ArrivalProbability, top); p != nil {
			s.PassengerID++
			p.ID = s.PassengerID
			s.Generated++
			s.emit(ArrivalEvent{Tick: s.Tick, PassengerID: p.ID, Origin: p.Origin, Destination: p.Destination})
		}
		f.AgeWaiting()
	}
}
