package domain

import "fmt"

// PaceUnavailable is the display pace for workouts without a pace concept.
const PaceUnavailable = "N/A"

// DerivePace computes the display pace string for a workout.
//
// Running pace is minutes per kilometre ("M:SS /km") with the fractional
// minute floored into seconds, or the manual override returned verbatim when
// one is supplied. Cycling pace is average speed ("X.X km/h"). Swimming, Gym
// and Stretching track no pace. Non-positive duration or distance yields
// PaceUnavailable rather than an error; only an unknown category fails.
func DerivePace(category Category, distanceKM float64, durationMin int, manualPace string) (string, error) {
	switch category {
	case CategoryRunning:
		if manualPace != "" {
			return manualPace, nil
		}
		if distanceKM <= 0 || durationMin <= 0 {
			return PaceUnavailable, nil
		}
		perKM := float64(durationMin) / distanceKM
		minutes := int(perKM)
		seconds := int((perKM - float64(minutes)) * 60)
		return fmt.Sprintf("%d:%02d /km", minutes, seconds), nil
	case CategoryCycling:
		if distanceKM <= 0 || durationMin <= 0 {
			return PaceUnavailable, nil
		}
		speed := distanceKM / (float64(durationMin) / 60)
		return fmt.Sprintf("%.1f km/h", speed), nil
	case CategorySwimming, CategoryGym, CategoryStretching:
		return PaceUnavailable, nil
	}
	return "", ErrInvalidCategory
}
