// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package timeaux holds small infrastructure types shared by the timer and clock
packages: a Result type for success-or-failure values, the error kinds reported
by this module, hash code combination helpers, and initialization contracts.
*/
package timeaux
