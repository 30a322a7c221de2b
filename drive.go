package fetchio

// Drive starts each task, then busy-polls the reactor until every one
// has finished. Holding the tasks here for the whole run is what keeps
// the ownership rule intact: no task is released while a request it
// suspended on is still in flight.
func Drive(r *Reactor, tasks ...*Task) {
	for _, t := range tasks {
		t.Start()
	}

	for {
		finished := true
		for _, t := range tasks {
			if !t.IsFinished() {
				finished = false
				break
			}
		}
		if finished {
			return
		}
		r.Poll()
	}
}
