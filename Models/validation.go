package Models

// ValidateStartKm checks that a new drive does not start below the end
// reading of the previous one. With no previous drive, or one that has no
// end reading yet, any start is accepted.
func ValidateStartKm(startKm int, previous *DriveLogWithJobSite) error {
	if previous == nil || previous.EndKm == nil {
		return nil
	}
	if startKm < *previous.EndKm {
		return &StartKmTooLowError{StartKm: startKm, PreviousEndKm: *previous.EndKm}
	}
	return nil
}

// ValidateEndKm checks that a drive does not end below its start reading.
func ValidateEndKm(endKm int, current DriveLogWithJobSite) error {
	if endKm < current.StartKm {
		return &EndKmTooLowError{EndKm: endKm, StartKm: current.StartKm}
	}
	return nil
}
