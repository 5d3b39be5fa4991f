package service

import (
	"github.com/bitfantasy/gearbox/internal/shop/entity"
	"gorm.io/gorm"
)

// recomputeJobTotals 从源数据整体重算工单汇总并全量覆盖，不做增量修补。
// totalParts排除已退回配件。必须在每次Part/JobCost变更的同一事务内调用。
func recomputeJobTotals(tx *gorm.DB, jobCardID string) error {
	var totalParts float64
	err := tx.Model(&entity.Part{}).
		Select("COALESCE(SUM(selling_price * quantity), 0)").
		Where("job_card_id = ? AND status <> ?", jobCardID, entity.PartStatusReturned).
		Scan(&totalParts).Error
	if err != nil {
		return err
	}

	var totalLabor float64
	err = tx.Model(&entity.JobCost{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("job_card_id = ? AND type = ?", jobCardID, entity.JobCostTypeLabor).
		Scan(&totalLabor).Error
	if err != nil {
		return err
	}

	var totalOther float64
	err = tx.Model(&entity.JobCost{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("job_card_id = ? AND type = ?", jobCardID, entity.JobCostTypeOther).
		Scan(&totalOther).Error
	if err != nil {
		return err
	}

	return tx.Model(&entity.JobCard{}).
		Where("id = ?", jobCardID).
		Updates(map[string]interface{}{
			"total_parts": totalParts,
			"total_labor": totalLabor,
			"total_other": totalOther,
			"final_cost":  totalParts + totalLabor + totalOther,
		}).Error
}
