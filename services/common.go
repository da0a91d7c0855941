package services

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
)

var httpClient = &http.Client{}

// HttpRequest sends data as a JSON body and returns the response status and body.
func HttpRequest(method, url string, header map[string]string, data interface{}) (int, []byte, error) {

	var requestBody []byte
	var err error
	var req *http.Request

	// 序列化參數
	if data != nil {
		if requestBody, err = json.Marshal(data); err != nil {
			return 0, nil, err
		}
		if req, err = http.NewRequest(method, url, bytes.NewBuffer(requestBody)); err != nil {
			return 0, nil, err
		}
	} else {
		if req, err = http.NewRequest(method, url, nil); err != nil {
			return 0, nil, err
		}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for key, element := range header {
		req.Header.Set(key, element)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}
