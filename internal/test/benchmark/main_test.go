package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/go-resty/resty/v2"
)

// 测试配置
type TestConfig struct {
	BaseURL     string `json:"base_url"`
	AdminEmail  string `json:"admin_email"`
	AdminPass   string `json:"admin_pass"`
	Concurrency int    `json:"concurrency"`
	Requests    int    `json:"requests"`
}

// 登录响应（与 /auth/login 的响应信封一致）
type loginResponse struct {
	Success bool `json:"success"`
	Code    int  `json:"code"`
	Data    struct {
		Token string `json:"token"`
	} `json:"data"`
}

var (
	config    TestConfig
	authToken string
)

// TestMain 测试主函数
// 压测需要一个运行中的服务，未设置 BENCHMARK_BASE_URL 时直接跳过
func TestMain(m *testing.M) {
	if os.Getenv("BENCHMARK_BASE_URL") == "" {
		fmt.Println("未设置 BENCHMARK_BASE_URL，跳过基准测试")
		os.Exit(0)
	}

	if err := loadConfig(); err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}

	if err := getAuthToken(); err != nil {
		fmt.Printf("获取认证令牌失败: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// loadConfig 加载测试配置
func loadConfig() error {
	// 默认配置
	config = TestConfig{
		BaseURL:     os.Getenv("BENCHMARK_BASE_URL"),
		AdminEmail:  "admin@stagejhook.com",
		AdminPass:   "Admin@123",
		Concurrency: 10,
		Requests:    100,
	}

	// 尝试从文件加载配置
	data, err := os.ReadFile("test_config.json")
	if err == nil {
		if err := json.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("解析配置文件失败: %v", err)
		}
	}

	return nil
}

// getAuthToken 登录并从响应中解析令牌
func getAuthToken() error {
	var loginResp loginResponse
	resp, err := resty.New().R().
		SetBody(map[string]string{
			"email":    config.AdminEmail,
			"password": config.AdminPass,
		}).
		SetResult(&loginResp).
		Post(config.BaseURL + "/auth/login")
	if err != nil {
		return err
	}
	if resp.IsError() || !loginResp.Success {
		return fmt.Errorf("登录返回 %d", resp.StatusCode())
	}

	authToken = loginResp.Data.Token
	return nil
}

// TestPortfolioList 测试作品集列表接口
func TestPortfolioList(t *testing.T) {
	benchmark := NewAPIBenchmark(config.BaseURL, config.Concurrency, config.Requests, "")
	result := benchmark.RunGET("/portfolio")
	result.PrintResult()

	if result.FailureCount > 0 {
		t.Errorf("作品集列表接口测试失败: 成功率 %.2f%%", float64(result.SuccessCount)/float64(result.TotalRequests)*100)
	}
}

// TestExhibitionList 测试展会列表接口
func TestExhibitionList(t *testing.T) {
	benchmark := NewAPIBenchmark(config.BaseURL, config.Concurrency, config.Requests, "")
	result := benchmark.RunGET("/exhibition")
	result.PrintResult()

	if result.FailureCount > 0 {
		t.Errorf("展会列表接口测试失败: 成功率 %.2f%%", float64(result.SuccessCount)/float64(result.TotalRequests)*100)
	}
}

// TestStats 测试统计数据接口（带响应缓存，应为最快的一组）
func TestStats(t *testing.T) {
	benchmark := NewAPIBenchmark(config.BaseURL, config.Concurrency, config.Requests, "")
	result := benchmark.RunGET("/stats")
	result.PrintResult()

	if result.FailureCount > 0 {
		t.Errorf("统计数据接口测试失败: 成功率 %.2f%%", float64(result.SuccessCount)/float64(result.TotalRequests)*100)
	}
}

// TestEnquiryList 测试询盘列表接口（需要管理员令牌）
func TestEnquiryList(t *testing.T) {
	benchmark := NewAPIBenchmark(config.BaseURL, config.Concurrency, config.Requests, authToken)
	result := benchmark.RunGET("/enquiry")
	result.PrintResult()

	if result.FailureCount > 0 {
		t.Errorf("询盘列表接口测试失败: 成功率 %.2f%%", float64(result.SuccessCount)/float64(result.TotalRequests)*100)
	}
}

// TestAdminList 测试管理员列表接口（需要超级管理员令牌）
func TestAdminList(t *testing.T) {
	benchmark := NewAPIBenchmark(config.BaseURL, config.Concurrency, config.Requests, authToken)
	result := benchmark.RunGET("/admins")
	result.PrintResult()

	if result.FailureCount > 0 {
		t.Errorf("管理员列表接口测试失败: 成功率 %.2f%%", float64(result.SuccessCount)/float64(result.TotalRequests)*100)
	}
}
