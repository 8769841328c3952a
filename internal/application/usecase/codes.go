package usecase

import "fmt"

// nextCode incrementa el sufijo numérico de un código secuencial (MAT-001,
// SUP-001, PRD-001). Con last vacío arranca en 001.
func nextCode(prefix, last string) string {
	seq := 1
	if last != "" {
		var n int
		if _, err := fmt.Sscanf(last, prefix+"-%03d", &n); err == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, seq)
}
