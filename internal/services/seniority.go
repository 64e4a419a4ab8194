package services

import "talentsift/cv-matcher/internal/models"

// DeriveSeniorityHint classifies a candidate from signals and estimated
// months. Duration evidence outranks self-reported titles; student/intern
// flags are hard ceilings against club-leadership over-statement. The first
// applicable branch wins.
func DeriveSeniorityHint(sig Signals, months int, hasMonths bool) models.Seniority {
	// 1) Intern
	if sig.IsIntern {
		if hasMonths {
			switch {
			case months <= 6:
				return models.SeniorityIntern
			case months <= 12:
				return models.SeniorityFresher
			case months <= 24:
				return models.SeniorityJunior
			default:
				return models.SeniorityMid
			}
		}
		return models.SeniorityIntern
	}

	// 2) Student: no auto Intern, Fresher is the safer floor
	if sig.IsStudent {
		if hasMonths {
			switch {
			case months <= 12:
				return models.SeniorityFresher
			case months <= 24:
				return models.SeniorityJunior
			case months <= 48:
				return models.SeniorityMid
			case months <= 72:
				return models.SenioritySenior
			default:
				return models.SeniorityLead
			}
		}
		return models.SeniorityFresher
	}

	// 3) Leader keywords, school vs work context
	if sig.HasLeaderKeywords {
		// Club/school leadership never reaches Lead; Senior only with real duration.
		if sig.LeaderStudentContext {
			if hasMonths {
				switch {
				case months <= 24:
					return models.SeniorityJunior
				case months <= 48:
					return models.SeniorityMid
				default:
					return models.SenioritySenior
				}
			}
			return models.SeniorityMid
		}

		if hasMonths {
			switch {
			case months >= 72:
				return models.SeniorityLead
			case months >= 48:
				return models.SenioritySenior
			case months >= 24:
				return models.SeniorityMid
			default:
				// leading with under two years is usually a small project lead
				return models.SeniorityJunior
			}
		}

		if sig.HasWorkContext && sig.HasManagerKeywords {
			return models.SenioritySenior
		}
		return models.SeniorityMid
	}

	// 4) months thresholds
	if hasMonths {
		switch {
		case months <= 12:
			return models.SeniorityFresher
		case months <= 24:
			return models.SeniorityJunior
		case months <= 48:
			return models.SeniorityMid
		case months <= 72:
			return models.SenioritySenior
		default:
			return models.SeniorityLead
		}
	}

	// 5) keyword fallback
	if sig.IsFresher {
		return models.SeniorityFresher
	}
	if sig.HasSeniorKeywords {
		return models.SenioritySenior
	}
	if sig.HasJuniorKeywords {
		return models.SeniorityJunior
	}
	return models.SeniorityUnknown
}

// SeniorityHintConfidence rates how much the hint should be trusted.
func SeniorityHintConfidence(sig Signals, months int, hasMonths bool) models.SeniorityConfidence {
	if hasMonths && months >= 36 {
		return models.ConfidenceHigh
	}
	if (hasMonths && months >= 12) || sig.IsStudent || sig.IsIntern || sig.HasWorkContext {
		return models.ConfidenceMedium
	}
	return models.ConfidenceLow
}
