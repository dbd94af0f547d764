package app

import (
	"github.com/perfdash/perfdash/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// SubscribeAuditLog logs every stored case and data upload.
func SubscribeAuditLog(bus *event_bus.EventBus) (unsubscribe func()) {
	unsubscribeCases := event_bus.SubscribeTyped(bus, event_bus.CaseCreatedType,
		func(e event_bus.EventT[event_bus.CaseCreated]) error {
			log.WithFields(log.Fields{
				"event":    string(e.Type),
				"caseId":   e.Data.CaseId,
				"manager":  e.Data.Manager,
				"caseDate": e.Data.CaseDate.Format("2006-01-02"),
			}).Info("case created")
			return nil
		})
	unsubscribeData := event_bus.SubscribeTyped(bus, event_bus.DepartmentDataReplacedType,
		func(e event_bus.EventT[event_bus.DepartmentDataReplaced]) error {
			log.WithFields(log.Fields{
				"event":       string(e.Type),
				"caseId":      e.Data.CaseId,
				"year":        e.Data.Year,
				"departments": e.Data.Departments,
				"removed":     e.Data.Removed,
			}).Info("department data replaced")
			return nil
		})

	return func() {
		unsubscribeCases()
		unsubscribeData()
	}
}
