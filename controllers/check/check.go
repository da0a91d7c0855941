package check

import (
	"encoding/json"
	"fmt"
	"licaca-meal-log/database"
	"licaca-meal-log/enums"
	"licaca-meal-log/services/rabbitmq"
	"licaca-meal-log/services/trackLog"
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
)

type AliveResponse struct {
	Success  bool      `json:"success"`
	Messsage string    `json:"message"`
	Info     CheckInfo `json:"info"`
}

type CheckInfo struct {
	Database   string   `json:"database"`
	Queues     []string `json:"queue"`
	RoutineNum int      `json:"routine_num"`
}

func CheckAlive(c *gin.Context) {
	resMsg := "main thread alive"
	success := true
	checkInfo := CheckInfo{Database: "ok"}

	// 檢查資料庫
	if database.DB == nil {
		success = false
		checkInfo.Database = "not initialized"
	} else if err := database.DB.DB().Ping(); err != nil {
		success = false
		checkInfo.Database = err.Error()
		trackLog.Error(fmt.Sprintf("database ping fail: %s", err.Error()), false)
	}

	//檢查mq實體是否在連線池
	if rabbitConn := rabbitmq.GetConnection(enums.ConnectionName); rabbitConn != nil {
		var rabbitErr error
		if !rabbitConn.Connected() {
			trackLog.Error("Api detect Connection lost, Reconnecting..", false)
			if err := rabbitConn.Reconnect(); err != nil {
				rabbitErr = fmt.Errorf("reconnect rabbit fail: %w", err)
			}
		}
		if rabbitErr == nil {
			queues, err := rabbitConn.Inspect()
			if err != nil {
				rabbitErr = err
			}
			for _, queue := range queues {
				queueJson, _ := json.Marshal(queue)
				checkInfo.Queues = append(checkInfo.Queues, string(queueJson))
			}
		}
		if rabbitErr != nil {
			success = false
			resMsg = rabbitErr.Error()
			trackLog.Error(resMsg, false)
		}
	}

	// 檢查gorutine數目
	checkInfo.RoutineNum = runtime.NumGoroutine()

	status := http.StatusOK
	if !success {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, AliveResponse{success, resMsg, checkInfo})
}
