package validate_session

import (
	"time"

	"github.com/m04kA/SMC-TrainerScheduleService/pkg/types"
)

// Request предлагаемый интервал сессии
type Request struct {
	TrainerID        int64            // ID тренера
	Date             time.Time        // Дата сессии (без времени)
	Start            types.TimeString // Начало, "10:00"
	End              types.TimeString // Конец, "11:00"
	ExcludeSessionID *int64           // Сессия, которую переносят (не конфликтует сама с собой)
}
