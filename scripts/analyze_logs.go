package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

type LogStats struct {
	TotalErrors          int
	ChargesInitiated     int
	ChargesFailed        int
	NotificationsTotal   int
	NotificationsApplied int
	NotificationsNoOp    int
	SignatureFailures    int
	StatusCounts         map[string]int
	OrderActivities      map[string]int
	ErrorPatterns        map[string]int
}

func main() {
	// Get today's date for log file names
	today := time.Now().Format("2006-01-02")
	logDir := "./logs"

	// Initialize stats
	stats := &LogStats{
		StatusCounts:    make(map[string]int),
		OrderActivities: make(map[string]int),
		ErrorPatterns:   make(map[string]int),
	}

	// Analyze error logs
	analyzeErrorLogs(filepath.Join(logDir, fmt.Sprintf("error-%s.log", today)), stats)

	// Analyze info logs
	analyzeInfoLogs(filepath.Join(logDir, fmt.Sprintf("info-%s.log", today)), stats)

	// Print report
	printReport(stats)
}

func analyzeErrorLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		stats.TotalErrors++

		// Count failed gateway charges
		if strings.Contains(line, "Gateway charge failed") {
			stats.ChargesFailed++
			extractOrderActivity(line, stats)
		}

		// Count rejected notifications
		if strings.Contains(line, "Notification rejected") {
			stats.SignatureFailures++
		}

		// Extract error patterns
		extractErrorPattern(line, stats)
	}
}

func analyzeInfoLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	statusRegex := regexp.MustCompile(`Transaction notification received for \S+: (\S+)`)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		// Count initiated charges
		if strings.Contains(line, "Gateway charge created") {
			stats.ChargesInitiated++
			extractOrderActivity(line, stats)
		}

		// Count notifications and their vendor statuses
		if m := statusRegex.FindStringSubmatch(line); m != nil {
			stats.NotificationsTotal++
			stats.StatusCounts[m[1]]++
			extractOrderActivity(line, stats)
		}

		if strings.Contains(line, "updated to") {
			stats.NotificationsApplied++
		}
		if strings.Contains(line, "No status change applied") {
			stats.NotificationsNoOp++
		}
	}
}

func extractOrderActivity(line string, stats *LogStats) {
	// Extract booking order IDs from log line
	orderRegex := regexp.MustCompile(`BK-[a-zA-Z0-9-]+`)
	if orderID := orderRegex.FindString(line); orderID != "" {
		stats.OrderActivities[orderID]++
	}
}

func extractErrorPattern(line string, stats *LogStats) {
	// Extract the main error message
	parts := strings.Split(line, ":")
	if len(parts) > 1 {
		errorMsg := strings.TrimSpace(parts[1])
		stats.ErrorPatterns[errorMsg]++
	}
}

func printReport(stats *LogStats) {
	fmt.Println("\n=== Log Analysis Report ===")
	fmt.Println("Generated:", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Println("\n1. Charge Statistics:")
	fmt.Printf("   Charges Initiated: %d\n", stats.ChargesInitiated)
	fmt.Printf("   Charges Failed: %d\n", stats.ChargesFailed)

	fmt.Println("\n2. Notification Statistics:")
	fmt.Printf("   Notifications Received: %d\n", stats.NotificationsTotal)
	fmt.Printf("   Status Changes Applied: %d\n", stats.NotificationsApplied)
	fmt.Printf("   No-Op Deliveries: %d\n", stats.NotificationsNoOp)
	fmt.Printf("   Signature Failures: %d\n", stats.SignatureFailures)
	for status, count := range stats.StatusCounts {
		fmt.Printf("   transaction_status=%s: %d\n", status, count)
	}

	fmt.Println("\n3. Error Statistics:")
	fmt.Printf("   Total Errors: %d\n", stats.TotalErrors)

	fmt.Println("\n4. Most Active Bookings:")
	printTopOrders(stats.OrderActivities, 5)

	fmt.Println("\n5. Most Common Errors:")
	printTopErrors(stats.ErrorPatterns, 5)
}

func printTopOrders(orders map[string]int, limit int) {
	type orderActivity struct {
		orderID string
		count   int
	}

	var activities []orderActivity
	for orderID, count := range orders {
		activities = append(activities, orderActivity{orderID, count})
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].count > activities[j].count
	})

	for i, activity := range activities {
		if i >= limit {
			break
		}
		fmt.Printf("   %s: %d events\n", activity.orderID, activity.count)
	}
}

func printTopErrors(errors map[string]int, limit int) {
	type errorCount struct {
		error string
		count int
	}

	var errorList []errorCount
	for err, count := range errors {
		errorList = append(errorList, errorCount{err, count})
	}

	sort.Slice(errorList, func(i, j int) bool {
		return errorList[i].count > errorList[j].count
	})

	for i, err := range errorList {
		if i >= limit {
			break
		}
		fmt.Printf("   %s: %d occurrences\n", err.error, err.count)
	}
}
